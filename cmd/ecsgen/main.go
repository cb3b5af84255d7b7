// Command ecsgen compiles ecs/component/schema.yaml into the component types,
// the schema registry table and the scene aggregate.
//
//	go generate ./ecs/component
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

func main() {
	schemaPath := flag.String("schema", "schema.yaml", "schema file")
	componentOut := flag.String("component", "components_gen.go", "output for component kinds")
	kindsOut := flag.String("kinds", "../schema/kinds_gen.go", "output for the registry table")
	sceneOut := flag.String("scene", "../scene/scene_gen.go", "output for the scene aggregate")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("ecsgen: ")

	data, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatal(err)
	}
	schema, err := parseSchema(data)
	if err != nil {
		log.Fatalf("%s: %v", *schemaPath, err)
	}

	outputs := []struct {
		path string
		tmpl func() ([]byte, error)
	}{
		{*componentOut, func() ([]byte, error) { return render(componentTmpl, *componentOut, schema) }},
		{*kindsOut, func() ([]byte, error) { return render(kindsTmpl, *kindsOut, schema) }},
		{*sceneOut, func() ([]byte, error) { return render(sceneTmpl, *sceneOut, schema) }},
	}
	for _, o := range outputs {
		src, err := o.tmpl()
		if err != nil {
			log.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Dir(o.path), 0o755); err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(o.path, src, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s (%d kinds)", o.path, len(schema.Kinds))
	}
}
