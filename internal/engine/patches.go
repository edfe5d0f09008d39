package engine

import (
	json "github.com/goccy/go-json"

	"pension-engine/internal/jsonpatch"
	"pension-engine/internal/model"
)

var emptyPatch = json.RawMessage("[]")

// situationPatches returns the patch turning before into after and the one
// turning after back into before.
func situationPatches(before, after model.Situation) (fwd, bwd json.RawMessage, err error) {
	if before.Dossier == after.Dossier {
		return emptyPatch, emptyPatch, nil
	}

	a, err := toDocument(before)
	if err != nil {
		return nil, nil, err
	}
	b, err := toDocument(after)
	if err != nil {
		return nil, nil, err
	}

	fwdOps, bwdOps := jsonpatch.DiffBoth(a, b, "")
	if fwd, err = marshalPatch(fwdOps); err != nil {
		return nil, nil, err
	}
	if bwd, err = marshalPatch(bwdOps); err != nil {
		return nil, nil, err
	}
	return fwd, bwd, nil
}

func toDocument(s model.Situation) (any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func marshalPatch(ops []jsonpatch.Operation) (json.RawMessage, error) {
	if len(ops) == 0 {
		return emptyPatch, nil
	}
	return json.Marshal(ops)
}
