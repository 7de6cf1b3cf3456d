// Package input resolves secret values from the user.
//
// A secret arrives one of three ways: typed twice at a hidden terminal
// prompt, streamed over stdin for multiline content, or generated from
// crypto/rand. The package also owns the small terminal helpers the rest
// of the program uses for passphrases and yes/no confirmations. Prompts
// prefer /dev/tty so stdin can carry piped data at the same time.
package input
