// Package icons provides the built-in SVG icon set and the keyword rules that
// infer an icon from element tags, element types and group titles.
package icons

import (
	"regexp"
	"sort"
	"strconv"
)

// Icon keys.
const (
	New      = "new"
	Edit     = "edit"
	Delete   = "delete"
	Check    = "check"
	Module   = "module"
	Info     = "info"
	Link     = "link"
	User     = "user"
	Database = "database"
	API      = "api"
	Warning  = "warning"
)

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`

var assets = map[string]string{
	New:      svgOpen + `<path d="M12 22c5.523 0 10-4.477 10-10S17.523 2 12 2 2 6.477 2 12s4.477 10 10 10z"></path><path d="M12 8v8"></path><path d="M8 12h8"></path></svg>`,
	Edit:     svgOpen + `<path d="M17 3a2.828 2.828 0 1 1 4 4L7.5 20.5 2 22l1.5-5.5L17 3z"></path></svg>`,
	Delete:   svgOpen + `<path d="M3 6h18"></path><path d="M19 6v14a2 2 0 0 1-2 2H7a2 2 0 0 1-2-2V6m3 0V4a2 2 0 0 1 2-2h4a2 2 0 0 1 2 2v2"></path></svg>`,
	Check:    svgOpen + `<path d="M22 11.08V12a10 10 0 1 1-5.93-9.14"></path><polyline points="22 4 12 14.01 9 11.01"></polyline></svg>`,
	Module:   svgOpen + `<path d="M21 16V8a2 2 0 0 0-1-1.73l-7-4a2 2 0 0 0-2 0l-7 4A2 2 0 0 0 3 8v8a2 2 0 0 0 1 1.73l7 4a2 2 0 0 0 2 0l7-4A2 2 0 0 0 21 16z"></path><polyline points="3.27 6.96 12 12.01 20.73 6.96"></polyline><line x1="12" y1="22.08" x2="12" y2="12"></line></svg>`,
	Info:     svgOpen + `<circle cx="12" cy="12" r="10"></circle><line x1="12" y1="16" x2="12" y2="12"></line><line x1="12" y1="8" x2="12.01" y2="8"></line></svg>`,
	Link:     `<svg xmlns="http://www.w3.org/2000/svg" width="12" height="12" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M10 13a5 5 0 0 0 7.54.54l3-3a5 5 0 0 0-7.07-7.07l-1.72 1.72"></path><path d="M14 11a5 5 0 0 0-7.54-.54l-3 3a5 5 0 0 0 7.07 7.07l1.72-1.72"></path></svg>`,
	User:     svgOpen + `<path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"></path><circle cx="12" cy="7" r="4"></circle></svg>`,
	Database: svgOpen + `<ellipse cx="12" cy="5" rx="9" ry="3"></ellipse><path d="M3 5v14c0 1.66 4 3 9 3s9-1.34 9-3V5"></path><path d="M3 12c0 1.66 4 3 9 3s9-1.34 9-3"></path></svg>`,
	API:      svgOpen + `<path d="M18 8h-1a2 2 0 0 0-2 2v4a2 2 0 0 0 2 2h1"></path><path d="M2 8h1a2 2 0 0 1 2 2v4a2 2 0 0 1-2 2H2"></path><path d="M12 2v20"></path></svg>`,
	Warning:  svgOpen + `<path d="m21.73 18-8-14a2 2 0 0 0-3.46 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3Z"></path><line x1="12" y1="9" x2="12" y2="13"></line><line x1="12" y1="17" x2="12.01" y2="17"></line></svg>`,
}

// Get returns the SVG markup for key, or "" when the key is unknown.
func Get(key string) string {
	return assets[key]
}

// Keys returns every icon key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(assets))
	for k := range assets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	widthAttr  = regexp.MustCompile(`(?i)width="\d+"`)
	heightAttr = regexp.MustCompile(`(?i)height="\d+"`)
)

// Sized returns svg with its first width and height attributes set to size.
func Sized(svg string, size int) string {
	if svg == "" {
		return ""
	}
	s := strconv.Itoa(size)
	svg = replaceFirst(widthAttr, svg, `width="`+s+`"`)
	return replaceFirst(heightAttr, svg, `height="`+s+`"`)
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
