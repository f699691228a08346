package main

import (
	_ "embed"
	"io"
	"os"
	"os/user"
	"text/template"
)

//go:embed ive.service
var iveServiceEmbed string

type IveServiceParams struct {
	BinaryPath string
	User       string
	Dir        string
}

// SystemdServiceFile writes a unit file that serves dir as the current user
func SystemdServiceFile(w io.Writer, dir string) error {
	tmpl, err := template.New("ive.service").Parse(iveServiceEmbed)
	if err != nil {
		return err
	}

	path, err := os.Executable()
	if err != nil {
		return err
	}

	u, err := user.Current()
	if err != nil {
		return err
	}

	return tmpl.Execute(w, IveServiceParams{
		BinaryPath: path,
		User:       u.Username,
		Dir:        dir,
	})
}
