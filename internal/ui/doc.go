// Package ui provides semantic text formatting for confect CLI output.
//
// Formatters apply color when the terminal supports it and fall back to
// plain-text decoration when NO_COLOR is set or color is unavailable, so
// output stays readable in logs and pipes.
//
//	fmt.Println(ui.Success.Sprint("✓") + " Added " + ui.Path.Sprint(p))
//
// DiffLine colors one line of reconciler diff output, and Marker returns the
// one-letter status marker used by the status and restore commands.
// PrintTable renders borderless tables for list output.
package ui
