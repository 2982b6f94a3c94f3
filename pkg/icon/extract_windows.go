//go:build windows

package icon

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	shgfiSysIconIndex = 0x000004000
	shilExtraLarge    = 2
	ildTransparent    = 0x00000001
	biRGB             = 0
	dibRGBColors      = 0

	// IImageList vtable slots.
	vtblRelease = 2
	vtblGetIcon = 10
)

var (
	modshell32 = windows.NewLazySystemDLL("shell32.dll")
	moduser32  = windows.NewLazySystemDLL("user32.dll")
	modgdi32   = windows.NewLazySystemDLL("gdi32.dll")

	procSHGetFileInfoW = modshell32.NewProc("SHGetFileInfoW")
	procSHGetImageList = modshell32.NewProc("SHGetImageList")
	procGetIconInfo    = moduser32.NewProc("GetIconInfo")
	procDestroyIcon    = moduser32.NewProc("DestroyIcon")
	procGetDC          = moduser32.NewProc("GetDC")
	procReleaseDC      = moduser32.NewProc("ReleaseDC")
	procGetObjectW     = modgdi32.NewProc("GetObjectW")
	procGetDIBits      = modgdi32.NewProc("GetDIBits")
	procDeleteObject   = modgdi32.NewProc("DeleteObject")

	iidIImageList = windows.GUID{
		Data1: 0x46EB5926,
		Data2: 0x582E,
		Data3: 0x4017,
		Data4: [8]byte{0x9F, 0xDF, 0xE8, 0x99, 0x8D, 0xAA, 0x09, 0x50},
	}
)

type shFileInfo struct {
	Icon        windows.Handle
	IconIndex   int32
	Attributes  uint32
	DisplayName [windows.MAX_PATH]uint16
	TypeName    [80]uint16
}

type iconInfo struct {
	IsIcon   int32
	XHotspot uint32
	YHotspot uint32
	Mask     windows.Handle
	Color    windows.Handle
}

type bitmap struct {
	Type       int32
	Width      int32
	Height     int32
	WidthBytes int32
	Planes     uint16
	BitsPixel  uint16
	Bits       uintptr
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

type comObject struct {
	vtbl *[vtblGetIcon + 1]uintptr
}

// FromExecutable returns the extra-large shell icon of path as a PNG data
// URL. Every handle acquired along the way is released before returning.
func FromExecutable(path string) (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err == nil || err == syscall.Errno(1) {
		defer windows.CoUninitialize()
	}

	hicon, err := shellIcon(path)
	if err != nil {
		return "", err
	}

	var info iconInfo
	ok, _, callErr := procGetIconInfo.Call(uintptr(hicon), uintptr(unsafe.Pointer(&info)))
	procDestroyIcon.Call(uintptr(hicon))
	if ok == 0 {
		return "", fmt.Errorf("GetIconInfo: %w", callErr)
	}
	defer deleteObject(info.Mask)
	defer deleteObject(info.Color)

	if info.Color == 0 {
		return "", errors.New("icon has no color bitmap")
	}

	width, height, pix, err := readBitmap(info.Color)
	if err != nil {
		return "", err
	}
	return FromBGRA(width, height, pix)
}

// shellIcon resolves the system image list icon for path.
func shellIcon(path string) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	var sfi shFileInfo
	ret, _, _ := procSHGetFileInfoW.Call(
		uintptr(unsafe.Pointer(p)),
		0,
		uintptr(unsafe.Pointer(&sfi)),
		unsafe.Sizeof(sfi),
		shgfiSysIconIndex,
	)
	if ret == 0 {
		return 0, fmt.Errorf("SHGetFileInfoW failed for %s", path)
	}

	var list *comObject
	hr, _, _ := procSHGetImageList.Call(
		shilExtraLarge,
		uintptr(unsafe.Pointer(&iidIImageList)),
		uintptr(unsafe.Pointer(&list)),
	)
	if int32(hr) < 0 || list == nil {
		return 0, fmt.Errorf("SHGetImageList: HRESULT 0x%08x", uint32(hr))
	}
	defer syscall.SyscallN(list.vtbl[vtblRelease], uintptr(unsafe.Pointer(list)))

	var hicon windows.Handle
	hr, _, _ = syscall.SyscallN(
		list.vtbl[vtblGetIcon],
		uintptr(unsafe.Pointer(list)),
		uintptr(sfi.IconIndex),
		ildTransparent,
		uintptr(unsafe.Pointer(&hicon)),
	)
	if int32(hr) < 0 || hicon == 0 {
		return 0, fmt.Errorf("IImageList.GetIcon: HRESULT 0x%08x", uint32(hr))
	}
	return hicon, nil
}

// readBitmap copies a bitmap out as top-down 32-bit BGRA rows.
func readBitmap(hbm windows.Handle) (int, int, []byte, error) {
	var bm bitmap
	n, _, _ := procGetObjectW.Call(uintptr(hbm), unsafe.Sizeof(bm), uintptr(unsafe.Pointer(&bm)))
	if n != unsafe.Sizeof(bm) {
		return 0, 0, nil, errors.New("GetObjectW returned a short BITMAP")
	}
	if bm.Width <= 0 || bm.Height <= 0 {
		return 0, 0, nil, fmt.Errorf("invalid bitmap size %dx%d", bm.Width, bm.Height)
	}

	width, height := int(bm.Width), int(bm.Height)
	pix := make([]byte, width*height*4)
	bmi := bitmapInfo{
		Header: bitmapInfoHeader{
			Width:       bm.Width,
			Height:      -bm.Height, // top-down
			Planes:      1,
			BitCount:    32,
			Compression: biRGB,
		},
	}
	bmi.Header.Size = uint32(unsafe.Sizeof(bmi.Header))

	hdc, _, _ := procGetDC.Call(0)
	if hdc == 0 {
		return 0, 0, nil, errors.New("GetDC failed")
	}
	defer procReleaseDC.Call(0, hdc)

	lines, _, _ := procGetDIBits.Call(
		hdc,
		uintptr(hbm),
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&pix[0])),
		uintptr(unsafe.Pointer(&bmi)),
		dibRGBColors,
	)
	if int(int32(lines)) != height {
		return 0, 0, nil, fmt.Errorf("GetDIBits copied %d of %d scan lines", int32(lines), height)
	}
	return width, height, pix, nil
}

func deleteObject(h windows.Handle) {
	if h != 0 {
		procDeleteObject.Call(uintptr(h))
	}
}
