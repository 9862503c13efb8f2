package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
)

// DefaultConfigPath is read when neither --config nor the environment
// names a file.
const DefaultConfigPath = "/etc/tui-greeter/config.kdl"

// fileConfig mirrors the KDL config file. Pointer fields distinguish an
// absent node from an explicit zero value.
type fileConfig struct {
	Animation        *string   `kdl:"animation"`
	Renderer         *string   `kdl:"renderer"`
	FrameMS          *int      `kdl:"frame-ms"`
	Seed             *int64    `kdl:"seed"`
	InputWidth       *int      `kdl:"input-width"`
	Save             *bool     `kdl:"save"`
	Load             *bool     `kdl:"load"`
	SaveFile         *string   `kdl:"save-file"`
	XSessions        *string   `kdl:"xsessions"`
	WaylandSessions  *string   `kdl:"wayland-sessions"`
	WaylandSpecifier *bool     `kdl:"wayland-specifier"`
	Xinitrc          *string   `kdl:"xinitrc"`
	DefaultSession   *string   `kdl:"default-session"`
	WatchMS          *int      `kdl:"watch-ms"`
	LogFile          *string   `kdl:"log-file"`
	Trace            *bool     `kdl:"trace"`
	Lang             *fileLang `kdl:"lang"`
}

type fileLang struct {
	Login    string `kdl:"login"`
	Password string `kdl:"password"`
	Shell    string `kdl:"shell"`
	Xinitrc  string `kdl:"xinitrc"`
}

// parseFile decodes KDL config data.
func parseFile(data []byte) (fileConfig, error) {
	var fc fileConfig
	if err := kdl.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// loadFile reads path. A missing file is not an error.
func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return parseFile(data)
}

// apply overlays values present in the file onto d.
func (fc fileConfig) apply(d *defaults) {
	setString(&d.animation, fc.Animation)
	setString(&d.renderer, fc.Renderer)
	setInt(&d.frameMS, fc.FrameMS)
	if fc.Seed != nil {
		d.seed = *fc.Seed
	}
	setInt(&d.inputWidth, fc.InputWidth)
	setBool(&d.save, fc.Save)
	setBool(&d.load, fc.Load)
	setString(&d.saveFile, fc.SaveFile)
	setString(&d.xsessions, fc.XSessions)
	setString(&d.waylandSessions, fc.WaylandSessions)
	setBool(&d.waylandSpecifier, fc.WaylandSpecifier)
	setString(&d.xinitrc, fc.Xinitrc)
	setString(&d.defaultSession, fc.DefaultSession)
	setInt(&d.watchMS, fc.WatchMS)
	setString(&d.logFile, fc.LogFile)
	setBool(&d.trace, fc.Trace)
	if fc.Lang != nil {
		overlayString(&d.langLogin, fc.Lang.Login)
		overlayString(&d.langPassword, fc.Lang.Password)
		overlayString(&d.langShell, fc.Lang.Shell)
		overlayString(&d.langXinitrc, fc.Lang.Xinitrc)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func overlayString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
