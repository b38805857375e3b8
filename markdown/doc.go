// Package markdown styles single editor lines as the author types them.
//
// Only per-line constructs are recognised: ATX headings up to level 3,
// blockquotes, and `*`/`_` emphasis. Delimiters stay visible as marker
// segments so the raw Markdown is always what the author sees.
package markdown
