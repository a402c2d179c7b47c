// Package svgtint tints SVG images while they stream.
//
// A Scanner watches the byte stream for the end of the first opening <svg>
// tag and injects a <style> element right after it that forces fill and
// stroke to a single color. Input may arrive in chunks of any size: the tag
// may be split across chunks, attribute values may contain '>' and the tag
// name is matched without regard to ASCII case. Everything else passes
// through byte for byte, and input without an <svg> tag is returned as is.
//
// Core properties:
//   - One output chunk per input chunk, no document buffering
//   - Exactly one style block per stream
//   - Quote-aware tag scanning, case-insensitive "svg" match
//   - Malformed markup is passed through, never rejected
//
// Example:
//
//	res, err := svgtint.Tint(svgtint.TintRequest{
//		Reader:  file,
//		Writer:  os.Stdout,
//		Options: svgtint.Options{Color: "#f00"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !res.Injected {
//		log.Print("no <svg> tag found")
//	}
//
// Colors are 3- or 6-digit hex codes with or without the leading '#'.
// Anything else fails with an *InvalidColorError before streaming starts.
// ParseCSSColor converts named and functional CSS colors for callers that
// want to accept them.
package svgtint
