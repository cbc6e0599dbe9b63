// Package md2text converts Markdown documents to normalized plain text.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv := md2text.NewConverter()
//
//	result, err := conv.Convert(ctx, md2text.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text)
//
// The result carries the plain text plus metadata: input and output sizes,
// conversion duration, and which Markdown constructs were found in the
// original document.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Preprocessing (front matter removal, line normalization, HTML comments)
//  2. Element rewriting (headings, links, images, code, lists, quotes,
//     emphasis, rules, tables) per the configured policies
//  3. Postprocessing (blank-line collapsing, whitespace trimming)
//  4. Output sanitization (script/iframe regions, javascript: schemes,
//     base64 data URIs)
//  5. Element analysis against the original input
//
// # Configuration
//
// Per-conversion policies are passed via Input:
//
//	result, err := conv.Convert(ctx, md2text.Input{
//	    Markdown: content,
//	    Options: &md2text.Options{
//	        PreserveLinks: true,
//	        ListStyle:     md2text.ListStyleBullets,
//	        CodeHandling:  md2text.CodeHandlingRemove,
//	        TableFormat:   md2text.TableFormatGrid,
//	        HeadingStyle:  md2text.HeadingStyleUnderline,
//	    },
//	})
//
// A nil Options or an empty field means the documented default. Convert
// treats unrecognized values like unset ones; call Options.Validate first to
// reject them instead. Bold, italic, and strikethrough markers are always
// stripped regardless of configuration.
//
// # Errors
//
// Convert fails only on empty input or an internal failure, and every
// failure is a *ConversionError. Malformed Markdown is never an error:
// unmatched delimiters and ragged tables pass through best-effort.
//
// # Concurrency
//
// A Converter is stateless across calls. One instance can serve any number
// of goroutines, which is how the batch command fans out file conversions.
package md2text
