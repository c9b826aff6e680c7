package tui

import (
	"strings"
)

var logo = []string{
	" ____ ___ ___  ",
	"|  _ \\_ _/ _ \\ ",
	"| |_) | | | | |",
	"|  __/| | |_| |",
	"|_|  |___\\___/ ",
}

func renderLogo() string {
	var b strings.Builder
	for i, line := range logo {
		b.WriteString(titleStyle.Render(line))
		if i < len(logo)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
