// Package extract pulls plain text out of uploaded resume files.
//
// Plain text, PDF and DOCX are supported. The extracted text is what
// the analysis and matching engines operate on; the original bytes stay
// in the storage backend untouched.
package extract
