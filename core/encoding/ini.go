package encoding

import "github.com/go-ini/ini"

// FromINI reads the encoding hint an EasyRPG port may have left in
// RPG_RT.ini. Empty when the file or the key is missing, a broken ini
// file is treated the same.
func FromINI(path string) string {
	if path == "" {
		return ""
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return ""
	}
	return cfg.Section("EasyRPG").Key("Encoding").String()
}
