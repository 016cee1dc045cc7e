package envscope

// Version of the envscope library and command.
const Version = "0.1.0"
