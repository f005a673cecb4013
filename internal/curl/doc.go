// Package curl parses curl-style command lines into a Request.
//
// Parsing is tolerant. Only a missing URL is an error (ErrNoURL). Unknown
// flags, a missing method, missing headers or an undecodable body are all
// accepted.
//
// The command line is split by a small quote-aware scanner, not a shell
// grammar:
//   - single or double quotes, and the closing quote must match the opening one
//   - POSIX escapes inside double quotes (\" \\ \` \$)
//   - no escapes inside single quotes
//   - backslash-newline line continuations, joined inside quotes too
//   - an unterminated quote runs to the end of the input
//
// Pipes, subshells, variable expansion and command chaining are not
// interpreted.
//
// The package also locates curl commands inside Markdown and HTML documents;
// see FromMarkdown, FindInText and FindInHTML.
package curl
