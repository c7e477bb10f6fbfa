package tray

import (
	_ "embed"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	//go:embed icons/updates.png
	updatesPNG []byte
	//go:embed icons/error.png
	errorPNG []byte
	//go:embed icons/blank.png
	blankPNG []byte
)

// Symbolic names looked up in the installed icon themes.
var iconNames = map[Icon]string{
	IconUpdates: "software-update-available",
	IconError:   "dialog-error",
}

var iconSizes = []string{"22x22", "24x24", "32x32", "48x48", "16x16", "scalable"}

// iconDirs returns the base directories of the icon theme search path.
func iconDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".icons"))
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "icons"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "icons"))
		}
	}
	return dirs
}

// lookupThemedIcon finds a PNG for name in any installed theme.
func lookupThemedIcon(dirs []string, name string) (string, bool) {
	for _, size := range iconSizes {
		for _, dir := range dirs {
			matches, _ := filepath.Glob(filepath.Join(dir, "*", size, "*", name+".png"))
			if len(matches) > 0 {
				return matches[0], true
			}
		}
	}
	return "", false
}

// iconSet holds the image bytes for every symbolic icon.
type iconSet map[Icon][]byte

// loadIcons resolves themed icons, falling back to the embedded ones.
func loadIcons(dirs []string) iconSet {
	set := iconSet{
		IconUpdates: updatesPNG,
		IconError:   errorPNG,
	}
	for icon, name := range iconNames {
		path, ok := lookupThemedIcon(dirs, name)
		if !ok {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("Failed to read themed icon", "path", path, "err", err)
			continue
		}
		slog.Debug("Using themed icon", "name", name, "path", path)
		set[icon] = data
	}
	return set
}
