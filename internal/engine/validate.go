package engine

import (
	"encoding/json"
	"math"
	"strings"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Category    Category
	XPReward    int
}

type CreateAchievementInput struct {
	Title       string
	Description string
	// Icon defaults to storage.DefaultAchievementIcon when empty.
	Icon     string
	XPEarned int
}

// blank reports whether s has no visible content. Values are stored as given;
// trimming only decides emptiness.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (in CreateTaskInput) Validate() error {
	verr := &ValidationError{}
	in.collect(verr)
	return verr.orNil()
}

func (in CreateTaskInput) collect(verr *ValidationError) {
	if blank(in.Title) {
		verr.add("title", "is required")
	}
	if blank(in.Description) {
		verr.add("description", "is required")
	}
	if !in.Category.IsValid() {
		verr.add("category", "must be one of "+categoryList())
	}
	if in.XPReward < 0 {
		verr.add("xpReward", "must be a non-negative integer")
	}
}

func (in CreateAchievementInput) Validate() error {
	verr := &ValidationError{}
	if blank(in.Title) {
		verr.add("title", "is required")
	}
	if blank(in.Description) {
		verr.add("description", "is required")
	}
	if in.XPEarned < 0 {
		verr.add("xpEarned", "must be a non-negative integer")
	}
	return verr.orNil()
}

// ParseTaskPayload checks a decoded JSON object against the task creation
// shape. Every problem is reported, not just the first. A missing or null
// xpReward becomes DefaultXPReward. Unknown keys are ignored.
func ParseTaskPayload(raw map[string]any) (CreateTaskInput, error) {
	verr := &ValidationError{}
	if raw == nil {
		verr.add("", "request body must be a JSON object")
		return CreateTaskInput{}, verr
	}

	in := CreateTaskInput{XPReward: DefaultXPReward}
	typeErr := map[string]bool{}

	if s, ok := stringField(raw, "title", verr); ok {
		in.Title = s
	} else {
		typeErr["title"] = true
	}
	if s, ok := stringField(raw, "description", verr); ok {
		in.Description = s
	} else {
		typeErr["description"] = true
	}
	if s, ok := stringField(raw, "category", verr); ok {
		in.Category = Category(s)
	} else {
		typeErr["category"] = true
	}

	if v, present := raw["xpReward"]; present && v != nil {
		n, ok := integerValue(v)
		if !ok {
			verr.add("xpReward", "must be a non-negative integer")
			typeErr["xpReward"] = true
		} else {
			in.XPReward = n
		}
	}

	// Semantic checks only for fields that had the right JSON type.
	semantic := &ValidationError{}
	in.collect(semantic)
	for _, is := range semantic.Issues {
		if !typeErr[is.Field] {
			verr.Issues = append(verr.Issues, is)
		}
	}

	if err := verr.orNil(); err != nil {
		return CreateTaskInput{}, err
	}
	return in, nil
}

func stringField(raw map[string]any, key string, verr *ValidationError) (string, bool) {
	v, present := raw[key]
	if !present || v == nil {
		verr.add(key, "is required")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		verr.add(key, "must be a string")
		return "", false
	}
	return s, true
}

// integerValue accepts whole JSON numbers in int32 range, including forms
// like 1e2 and 100.0.
func integerValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return wholeNumber(float64(n))
	case float64:
		return wholeNumber(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return wholeNumber(float64(i))
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return wholeNumber(f)
	default:
		return 0, false
	}
}

func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
