package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/investor-profile/internal/model"
)

// Output formats accepted by --format.
const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode json")
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	return eris.Wrap(enc.Close(), "encode yaml")
}

// writeReport prints r as its narrative (text) or as the full stored report.
func writeReport(w io.Writer, r *model.StoredReport, format string) error {
	switch format {
	case formatText, "":
		_, err := io.WriteString(w, r.Narrative+"\n")
		return eris.Wrap(err, "write narrative")
	case formatJSON:
		return writeJSON(w, r)
	case formatYAML:
		return writeYAML(w, r)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

// readResponses loads a response map from a JSON file, or stdin for "-".
func readResponses(path string) (model.ResponseMap, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "read responses %s", path)
	}
	return decodeResponses(data)
}

func decodeResponses(data []byte) (model.ResponseMap, error) {
	if strings.TrimSpace(string(data)) == "" {
		return model.ResponseMap{}, nil
	}
	var responses model.ResponseMap
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, eris.Wrap(err, "decode responses")
	}
	if responses == nil {
		responses = model.ResponseMap{}
	}
	return responses, nil
}
