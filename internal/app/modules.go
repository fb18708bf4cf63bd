package app

import (
	"github.com/specialistvlad/prismabundle/internal/registry"
	"github.com/specialistvlad/prismabundle/modules/prisma"
)

// coreModules is the definitive list of all modules that are compiled into
// the prismabundle binary.
var coreModules = []registry.Module{
	&prisma.Module{},
}
