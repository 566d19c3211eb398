package models

import (
	"encoding/json"
	"fmt"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ParseDealPatch decodes a partial DealInputs-shaped document into a field
// map. Import collaborators (document extractors, operator-authored files)
// produce sloppy JSON: single quotes, trailing commas, comments, markdown
// fences. We repair first, then parse with HJSON which tolerates whatever
// the repair pass left behind.
func ParseDealPatch(raw string) (map[string]interface{}, error) {
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		// Repair can reject inputs HJSON still accepts (bare keys, etc.)
		repaired = raw
	}

	patch := map[string]interface{}{}
	if err := hjson.Unmarshal([]byte(repaired), &patch); err != nil {
		return nil, fmt.Errorf("deal patch unparseable: %v", err)
	}
	return patch, nil
}

// ApplyPatch overlays the patch fields onto a copy of the inputs. Only keys
// present in the patch override; everything else passes through untouched.
// The merged record gets a fresh UpdatedAt, matching how the UI layer stamps
// edits.
func ApplyPatch(in DealInputs, patch map[string]interface{}) (DealInputs, error) {
	merged := in

	// Round-trip through JSON so the patch map lands on the struct using the
	// same tags the wire format uses. Unknown keys are ignored.
	buf, err := json.Marshal(patch)
	if err != nil {
		return in, fmt.Errorf("deal patch re-encode: %v", err)
	}
	if err := json.Unmarshal(buf, &merged); err != nil {
		return in, fmt.Errorf("deal patch apply: %v", err)
	}

	merged.UpdatedAt = time.Now()
	return merged, nil
}
