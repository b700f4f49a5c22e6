package rules

import (
	"fmt"
	"maps"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
)

// Evaluate applies bodies to the snapshot in order. Bodies must be ordered
// global first and organization last: the checklist keeps the first reason seen
// for a document type, and computed fields from later bodies shallow-override
// earlier ones. Evaluate performs no I/O.
func Evaluate(snap deal.Snapshot, bodies []Body) Result {
	return EvaluateFields(snap.Fields(), bodies)
}

// EvaluateFields is Evaluate over an already projected field map.
func EvaluateFields(fields map[string]any, bodies []Body) Result {
	res := Result{
		RequiredChecklist: []ChecklistItem{},
		ValidationErrors:  []Finding{},
		ComputedFields:    map[string]any{},
		Notices:           []string{},
	}

	seenDoc := make(map[string]bool)
	seenNotice := make(map[string]bool)

	notice := func(msg string) {
		if seenNotice[msg] {
			return
		}

		seenNotice[msg] = true
		res.Notices = append(res.Notices, msg)
	}

	for _, body := range bodies {
		for _, sc := range body.Scenarios {
			reportUnknown(sc.Code, sc.When, notice)

			if !MatchAll(sc.When, fields) {
				continue
			}

			for _, docType := range sc.RequiredDocuments {
				if docType == "" || seenDoc[docType] {
					continue
				}

				seenDoc[docType] = true
				res.RequiredChecklist = append(res.RequiredChecklist, ChecklistItem{DocType: docType, Reason: sc.Reason})
			}
		}

		for _, v := range body.Validations {
			reportUnknown(v.Code, v.When, notice)

			if !MatchAll(v.When, fields) {
				continue
			}

			sev := v.Severity
			if sev != SeverityWarning {
				sev = SeverityError
			}

			res.ValidationErrors = append(res.ValidationErrors, Finding{Code: v.Code, Message: v.Message, Severity: sev})
		}

		maps.Copy(res.ComputedFields, body.ComputedFields)
	}

	return res
}

func reportUnknown(code string, ps []Predicate, notice func(string)) {
	for _, p := range ps {
		if !p.Known() {
			notice(fmt.Sprintf("rule %q has an unrecognized predicate %q on %q; treated as non-matching", code, p.Kind, p.Field))
		}
	}
}
