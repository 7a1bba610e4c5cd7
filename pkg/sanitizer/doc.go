// Package sanitizer provides named value transforms applied to record fields
// before validation.
//
// Every transform is a Transform, a func(any) any that never fails. String
// transforms leave non-string values alone; the conversion transforms
// (number, integer, boolean) leave values they cannot convert alone.
//
//	clean, err := sanitizer.Chain("trim", "collapse_spaces", "title")
//	if err != nil {
//	    return err // unknown name
//	}
//	clean("  jane   DOE ") // "Jane Doe"
//
// The underlying string helpers (Trim, ToTitle, ToKebabCase, StripHTML, ...)
// are exported for direct use, and Apply and Compose build typed pipelines
// out of plain functions.
package sanitizer
