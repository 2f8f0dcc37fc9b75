// Package demo holds a small processing-pipeline domain used to exercise
// signature derivation end to end: an enum, a base class with subclasses,
// and a sink, all described from struct prototypes and registered under
// dotted class paths.
package demo

import (
	"fmt"

	"sigargs/actions"
	"sigargs/typedesc"
)

// Format is the record encoding handled by a processor.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatCSV:
		return "csv"
	default:
		return "json"
	}
}

// Choices lists the accepted format names.
func (Format) Choices() []string {
	return []string{"json", "yaml", "csv"}
}

// Set parses a format name into the receiver.
func (f *Format) Set(name string) error {
	switch name {
	case "json":
		*f = FormatJSON
	case "yaml":
		*f = FormatYAML
	case "csv":
		*f = FormatCSV
	default:
		return fmt.Errorf("unknown format %q, expected one of json, yaml, csv", name)
	}
	return nil
}

// Processor is the base of the processing hierarchy. The prototype values
// double as the option defaults.
type Processor struct {
	Input     string   `arg:"input,required"`
	Format    Format   `arg:"format"`
	BatchSize int      `arg:"batch_size"`
	Tags      []string `arg:"tags"`
	DryRun    bool     `arg:"dry_run"`
}

const processorDoc = `Reads records from an input source and processes them in batches.

Args:
    input: Path or URL of the record source.
    format: Encoding of the input records.
    batch_size: Number of records processed per batch.
    tags: Labels attached to every processed record.
    dry_run: Parse and validate records without emitting them.
`

// CSVProcessor specializes Processor for delimited text input.
type CSVProcessor struct {
	Processor
	Delimiter string `arg:"delimiter"`
	Header    bool   `arg:"header"`
}

const csvProcessorDoc = `Processes delimited text records.

Args:
    delimiter: Field separator character.
    header: Whether the first record holds column names.
`

// Sink writes processed records somewhere.
type Sink struct {
	Path    string `arg:"path,required"`
	Append  bool   `arg:"append"`
	Workers int    `arg:"workers"`
}

const sinkDoc = `Writes processed records to a destination.

Args:
    path: Destination file path.
    append: Append to the destination instead of truncating it.
    workers: Number of concurrent writer goroutines.
`

var (
	// ProcessorClass describes Processor with its defaults.
	ProcessorClass *typedesc.Class
	// CSVProcessorClass describes CSVProcessor; Processor is its base.
	CSVProcessorClass *typedesc.Class
	// SinkClass describes Sink.
	SinkClass *typedesc.Class
)

func init() {
	ProcessorClass = mustClass("Processor", Processor{
		BatchSize: 100,
	}, processorDoc)
	CSVProcessorClass = mustClass("CSVProcessor", CSVProcessor{
		Processor: Processor{BatchSize: 100},
		Delimiter: ",",
		Header:    true,
	}, csvProcessorDoc)
	// the embedded base is rebuilt from the prototype, so reattach its doc
	CSVProcessorClass.Bases[0].Doc = processorDoc
	SinkClass = mustClass("Sink", Sink{
		Workers: 1,
	}, sinkDoc)

	actions.RegisterClass("demo.Processor", ProcessorClass)
	actions.RegisterClass("demo.CSVProcessor", CSVProcessorClass)
	actions.RegisterClass("demo.Sink", SinkClass)
}

func mustClass(name string, prototype any, doc string) *typedesc.Class {
	class, err := typedesc.ClassFromStruct(name, prototype, doc)
	if err != nil {
		panic(fmt.Sprintf("demo: building class %s: %v", name, err))
	}
	return class
}

// Classes returns the demo descriptors keyed by their registered paths.
func Classes() map[string]*typedesc.Class {
	return map[string]*typedesc.Class{
		"demo.Processor":    ProcessorClass,
		"demo.CSVProcessor": CSVProcessorClass,
		"demo.Sink":         SinkClass,
	}
}
