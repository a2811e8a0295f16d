package fixture_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasmerge/plasmerge/pkg/model"
	"github.com/plasmerge/plasmerge/pkg/fixture"
)

const sample = `<pm-file>
<pm-meta revision="5"></pm-meta>
<pm-imports>
<pm-import id="Button" type="component" module="./Button" default="Button"></pm-import>
<pm-import id="clsx" module="clsx" default="clsx"></pm-import>
</pm-imports>
<pm-managed>
<div data-id="Root" data-cls="1" data-show="1">
<span data-id="Label" data-props="1" data-on="click"></span>
<b>untracked markup</b>
</div>
</pm-managed>
</pm-file>`

func TestParseExtractsRevisionAndManagedComment(t *testing.T) {
	file, root, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)
	assert.Equal(t, 5, file.ManagedRevision)
	assert.Equal(t, "plasmic-managed-jsx/5", file.ManagedComment)
	require.NotNil(t, root)
}

func TestParseLowersImportsWithManagedTrailingComment(t *testing.T) {
	file, _, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)
	require.Len(t, file.Imports, 2)
	assert.Equal(t, "// plasmic-import: Button/component", file.Imports[0].TrailingComment)
	assert.Equal(t, "// plasmic-import: clsx", file.Imports[1].TrailingComment)
}

func TestParseRootGetsVisibilityWrapperAndClassAttr(t *testing.T) {
	_, root, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)

	tag, ok := root.(*model.TagOrComponent)
	require.True(t, ok, "expected the managed root to lower to a TagOrComponent")
	assert.Equal(t, model.RawLogicalAnd, tag.Wrapper.Kind, "data-show=1 should wrap the element in a visibility gate")
	assert.Equal(t, "Root", tag.Elem.NameInID)
	require.Len(t, tag.Elem.Attrs, 1)
	assert.Equal(t, "className", tag.Elem.Attrs[0].Name)
}

func TestParseChildPropsSpreadAndOnHandler(t *testing.T) {
	_, root, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)
	tag := root.(*model.TagOrComponent)

	require.Len(t, tag.Elem.Children, 2, "expected the <span> and the untracked <b> markup")
	label, ok := tag.Elem.Children[0].(*model.TagOrComponent)
	require.True(t, ok)
	assert.Equal(t, "Label", label.Elem.NameInID)

	var sawSpread, sawOn bool
	for _, a := range label.Elem.Attrs {
		if a.Spread {
			sawSpread = true
		}
		if a.Name == "onclick" {
			sawOn = true
		}
	}
	assert.True(t, sawSpread, "expected a props spread attribute")
	assert.True(t, sawOn, "expected an onclick handler attribute")

	_, isOpaque := tag.Elem.Children[1].(*model.Opaque)
	assert.True(t, isOpaque, "an element with no data-id should lower to Opaque")
}

func TestDeriveSourceInsertsManagedMarkers(t *testing.T) {
	file, _, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)
	assert.Contains(t, file.Source, "// plasmic-managed-start")
	assert.Contains(t, file.Source, "// plasmic-managed-end")
}

func TestParseRejectsMissingManagedSection(t *testing.T) {
	bad := `<pm-file><pm-meta revision="1"></pm-meta><pm-imports></pm-imports></pm-file>`
	_, _, err := fixture.DOMParser{}.Parse(bad)
	require.Error(t, err)
}

func TestPrinterRoundTripsElementAttributesAndVisibility(t *testing.T) {
	_, root, err := fixture.DOMParser{}.Parse(sample)
	require.NoError(t, err)
	tag := root.(*model.TagOrComponent)

	out, err := fixture.Printer{}.Print(&model.RawNode{Kind: model.RawProgram, Children: []*model.RawNode{tag.Wrapper}})
	require.NoError(t, err)
	assert.Contains(t, out, "rh.showRoot()")
	assert.Contains(t, out, "rh.clsRoot()")
	assert.Contains(t, out, "rh.propsLabel()")
	assert.Contains(t, out, "rh.onLabelclick")
}
