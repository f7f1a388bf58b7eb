package policy

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

var policyFileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "ownership"},
		{Type: "compute"},
		{Type: "image", LabelNames: []string{"os"}},
	},
}

var ownershipSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "tags", Required: true},
	},
}

var computeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "allowed_instance_types"},
		{Name: "max_running"},
	},
}

var imageSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "parameter", Required: true},
	},
}

// LoadFile reads an HCL policy file. Blocks that are absent keep their default
// values, e.g.
//
//	ownership { tags = { CreatedBy = "platform-cli", Owner = "duvie" } }
//	compute   { allowed_instance_types = ["t3.micro"]  max_running = 1 }
//	image "ubuntu" { parameter = "/aws/service/canonical/..." }
func LoadFile(path string) (Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Policy{}, errors.Wrap(diags, fmt.Sprintf("Failed to parse policy file %s", path))
	}
	return decode(file.Body)
}

// Parse decodes policy source held in memory; filename is only used in diagnostics.
func Parse(src []byte, filename string) (Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Policy{}, errors.Wrap(diags, fmt.Sprintf("Failed to parse policy file %s", filename))
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (Policy, error) {
	content, diags := body.Content(policyFileSchema)
	if diags.HasErrors() {
		return Policy{}, errors.Wrap(diags, "Invalid policy file structure")
	}

	var (
		ownership    TagSet
		allowedTypes []string
		maxRunning   int
		images       map[string]string
	)

	seen := map[string]hcl.Range{}
	for _, block := range content.Blocks {
		if err := checkDuplicate(seen, block); err != nil {
			return Policy{}, err
		}
		switch block.Type {
		case "ownership":
			tags, err := decodeOwnership(block)
			if err != nil {
				return Policy{}, err
			}
			if len(tags) == 0 {
				return Policy{}, fmt.Errorf("ownership block at %s must declare at least one tag", block.DefRange)
			}
			ownership = tags
		case "compute":
			types, limit, err := decodeCompute(block)
			if err != nil {
				return Policy{}, err
			}
			allowedTypes, maxRunning = types, limit
		case "image":
			param, err := decodeImage(block)
			if err != nil {
				return Policy{}, err
			}
			if images == nil {
				images = map[string]string{}
			}
			images[block.Labels[0]] = param
		}
	}

	slog.Debug("Loaded policy file", "prefix", "policy.decode", "ownership_tags", len(ownership), "images", len(images))
	p := New(ownership, allowedTypes, maxRunning, images)
	if len(images) > 0 {
		// image blocks add to the defaults rather than replacing them
		merged := Default().images
		for name, param := range p.images {
			merged[name] = param
		}
		p.images = merged
	}
	return p, nil
}

// checkDuplicate rejects a second ownership or compute block, or a second
// image block with the same label.
func checkDuplicate(seen map[string]hcl.Range, block *hcl.Block) error {
	id := block.Type
	if len(block.Labels) > 0 {
		id += " " + fmt.Sprintf("%q", block.Labels[0])
	}
	if first, ok := seen[id]; ok {
		diags := hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %s block", id),
			Detail:   fmt.Sprintf("A %s block was already declared at %s.", id, first),
			Subject:  block.DefRange.Ptr(),
		}}
		return errors.Wrap(diags, "Invalid policy file structure")
	}
	seen[id] = block.DefRange
	return nil
}

func decodeOwnership(block *hcl.Block) (TagSet, error) {
	content, diags := block.Body.Content(ownershipSchema)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "Invalid ownership block")
	}
	value, diags := content.Attributes["tags"].Expr.Value(nil)
	if diags.HasErrors() {
		return nil, errors.Wrap(diags, "Failed to evaluate ownership tags")
	}
	if !value.Type().IsMapType() && !value.Type().IsObjectType() {
		return nil, fmt.Errorf("ownership tags must be a map, got %s", value.Type().FriendlyName())
	}

	var tags TagSet
	for it := value.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, fmt.Errorf("ownership tag %q must be a string", key.AsString())
		}
		tags = append(tags, Tag{Key: key.AsString(), Value: elem.AsString()})
	}
	slices.SortFunc(tags, func(a, b Tag) int {
		switch {
		case a.Key < b.Key:
			return -1
		case a.Key > b.Key:
			return 1
		}
		return 0
	})
	return tags, nil
}

func decodeCompute(block *hcl.Block) ([]string, int, error) {
	content, diags := block.Body.Content(computeSchema)
	if diags.HasErrors() {
		return nil, 0, errors.Wrap(diags, "Invalid compute block")
	}

	var types []string
	if attr, ok := content.Attributes["allowed_instance_types"]; ok {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, 0, errors.Wrap(diags, "Failed to evaluate allowed_instance_types")
		}
		if !value.Type().IsListType() && !value.Type().IsTupleType() && !value.Type().IsSetType() {
			return nil, 0, fmt.Errorf("allowed_instance_types must be a list, got %s", value.Type().FriendlyName())
		}
		for it := value.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() || elem.Type() != cty.String {
				return nil, 0, fmt.Errorf("allowed_instance_types entries must be strings")
			}
			types = append(types, elem.AsString())
		}
	}

	var limit int
	if attr, ok := content.Attributes["max_running"]; ok {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, 0, errors.Wrap(diags, "Failed to evaluate max_running")
		}
		if value.IsNull() || value.Type() != cty.Number {
			return nil, 0, fmt.Errorf("max_running must be a number")
		}
		bf := value.AsBigFloat()
		if !bf.IsInt() {
			return nil, 0, fmt.Errorf("max_running must be a whole number")
		}
		n, _ := bf.Int64()
		if n < 1 {
			return nil, 0, fmt.Errorf("max_running must be at least 1, got %d", n)
		}
		limit = int(n)
	}

	return types, limit, nil
}

func decodeImage(block *hcl.Block) (string, error) {
	content, diags := block.Body.Content(imageSchema)
	if diags.HasErrors() {
		return "", errors.Wrap(diags, fmt.Sprintf("Invalid image block %q", block.Labels[0]))
	}
	value, diags := content.Attributes["parameter"].Expr.Value(nil)
	if diags.HasErrors() {
		return "", errors.Wrap(diags, "Failed to evaluate image parameter")
	}
	if value.IsNull() || value.Type() != cty.String || value.AsString() == "" {
		return "", fmt.Errorf("image %q parameter must be a non-empty string", block.Labels[0])
	}
	return value.AsString(), nil
}
