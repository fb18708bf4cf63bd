// Package schema holds the HCL decoding structs for serverless.hcl service
// definitions. They mirror the file layout and are translated into the
// format-agnostic config model by the hcl package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// ServiceFile represents the top-level structure of a serverless.hcl file.
type ServiceFile struct {
	Service   string      `hcl:"service"`
	UseDotenv bool        `hcl:"use_dotenv,optional"`
	Provider  *Provider   `hcl:"provider,block"`
	Package   *Package    `hcl:"package,block"`
	Functions []*Function `hcl:"function,block"`
	Custom    *cty.Value  `hcl:"custom,optional"`
	Remain    hcl.Body    `hcl:",remain"`
}

// Provider represents the `provider` block.
type Provider struct {
	Name    string   `hcl:"name,optional"`
	Runtime string   `hcl:"runtime,optional"`
	Remain  hcl.Body `hcl:",remain"`
}

// Package represents the service-level `package` block.
type Package struct {
	Individually bool     `hcl:"individually,optional"`
	Remain       hcl.Body `hcl:",remain"`
}

// Function represents a `function "name" {}` block. Image is either a
// string reference or an object with `uri` or `name`.
type Function struct {
	Name    string     `hcl:"name,label"`
	Handler string     `hcl:"handler,optional"`
	Runtime string     `hcl:"runtime,optional"`
	Image   *cty.Value `hcl:"image,optional"`
	Remain  hcl.Body   `hcl:",remain"`
}

// DotenvProbe is decoded before the full file to learn whether `.env`
// must be loaded ahead of evaluating env() calls.
type DotenvProbe struct {
	UseDotenv bool     `hcl:"use_dotenv,optional"`
	Remain    hcl.Body `hcl:",remain"`
}
