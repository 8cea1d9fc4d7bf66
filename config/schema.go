package config

import (
	"github.com/invopop/jsonschema"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motionimage"
)

// Names of the documents described by DocumentSchemas.
const (
	PipelineDocument = "pipeline"
	EncoderDocument  = "encoder"
)

// DocumentSchemas maps the parts of a pipeline config file to their JSON schemas. The encoder
// block is free-form in Config, so its options are described by their own schema.
var DocumentSchemas = map[string]*jsonschema.Schema{
	PipelineDocument: jsonschema.Reflect(&Config{}),
	EncoderDocument:  jsonschema.Reflect(&motionimage.Config{}),
}
