// Package termstyle colors console output.
//
// A Writer decides once, at construction, whether its target is an
// interactive terminal. When it is, WriteStyled wraps the styled span of
// each rendered record (the range a formatter marked with %^ and %$) in
// the ANSI style of the record's level and resets afterwards; when it is
// not, the plain bytes pass through untouched, so redirected output and
// pipes never see escape codes.
//
// On Windows the console is switched into virtual terminal mode first;
// consoles that reject the mode fall back to plain output.
package termstyle
