package lox

// Version is the interpreter version reported by the CLI.
const Version = "1.0.0"
