package doctor

// groupDefinitions defines the check groups with their metadata, in
// display order.
var groupDefinitions = []struct {
	ID          string
	Name        string
	Description string
}{
	{
		ID:          GroupEnvironment,
		Name:        "Environment",
		Description: "What the launcher and icon extractor need from the OS",
	},
	{
		ID:          GroupCatalog,
		Name:        "Catalog",
		Description: "The JSON file holding apps and categories",
	},
	{
		ID:          GroupApps,
		Name:        "Apps",
		Description: "Every registered app can be launched",
	},
}

// GetGroups returns all check groups without results.
func GetGroups() []CheckGroup {
	groups := make([]CheckGroup, 0, len(groupDefinitions))
	for _, def := range groupDefinitions {
		groups = append(groups, CheckGroup{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
		})
	}
	return groups
}

// GetAllGroupIDs returns all group IDs.
func GetAllGroupIDs() []string {
	ids := make([]string, len(groupDefinitions))
	for i, def := range groupDefinitions {
		ids[i] = def.ID
	}
	return ids
}
