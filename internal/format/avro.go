package format

import "github.com/avsc-hub/avsc-hub/internal/schema"

func init() {
	MustRegister(Metadata{
		Key:         defaultFormatKey,
		Description: "Apache Avro JSON schema definitions",
		Extension:   ".avsc",
		NewParser: func() schema.Parser {
			return schema.NewAvroParser()
		},
	})
}
