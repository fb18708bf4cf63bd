// Package prisma embeds the Prisma schema file and the native engine
// binaries into the function artifacts once packaging has produced them.
package prisma
