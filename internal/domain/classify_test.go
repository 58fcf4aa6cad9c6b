package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseCategory(t *testing.T) {
	cases := []struct {
		tag string
		cat Category
		ok  bool
	}{
		{"Front", CategoryFront, true},
		{"Sp. Front", CategorySpFront, true},
		{"Back", CategoryBack, true},
		{"Sp. Back", CategorySpBack, true},
		{"front", "", false},
		{"Unknown", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		cat, ok := ParseCategory(tc.tag)
		assert.Equal(t, tc.ok, ok, "tag=%q", tc.tag)
		assert.Equal(t, tc.cat, cat, "tag=%q", tc.tag)
	}
}

func TestCategoryIndex_FollowsPayloadOrder(t *testing.T) {
	assert.Equal(t, 0, CategoryFront.Index())
	assert.Equal(t, 1, CategorySpFront.Index())
	assert.Equal(t, 2, CategoryBack.Index())
	assert.Equal(t, 3, CategorySpBack.Index())
	assert.Equal(t, -1, Category("Side").Index())
}

func TestClassify_GroupsByTagPreservingOrder(t *testing.T) {
	colors := []ColorAssignment{
		{ItemID: intPtr(5), ItemName: "Red", ColorSpecification: "Front"},
		{ItemID: intPtr(9), ItemName: "Blue", ColorSpecification: "Back"},
		{ItemID: intPtr(6), ItemName: "Cyan", ColorSpecification: "Front"},
	}

	got := Classify(colors)

	require.Len(t, got.Buckets[CategoryFront], 2)
	assert.Equal(t, "Red", got.Buckets[CategoryFront][0].ItemName)
	assert.Equal(t, "Cyan", got.Buckets[CategoryFront][1].ItemName)
	require.Len(t, got.Buckets[CategoryBack], 1)
	assert.Equal(t, "Blue", got.Buckets[CategoryBack][0].ItemName)
	assert.Empty(t, got.Buckets[CategorySpFront])
	assert.Empty(t, got.Buckets[CategorySpBack])
	assert.Empty(t, got.Dropped)
}

func TestClassify_FallsBackToFormSide(t *testing.T) {
	got := Classify([]ColorAssignment{
		{ItemName: "Gold", FormSide: "Sp. Back"},
		{ItemName: "Silver", ColorSpecification: "Sp. Front", FormSide: "Back"},
	})

	require.Len(t, got.Buckets[CategorySpBack], 1)
	assert.Equal(t, "Gold", got.Buckets[CategorySpBack][0].ItemName)
	require.Len(t, got.Buckets[CategorySpFront], 1)
	assert.Empty(t, got.Buckets[CategoryBack], "ColorSpecification wins over FormSide")
}

func TestClassify_DropsUnknownTags(t *testing.T) {
	colors := []ColorAssignment{
		{ItemName: "Red", ColorSpecification: "Front"},
		{ItemName: "Mystery", ColorSpecification: "Unknown"},
		{ItemName: "Blank"},
	}

	got := Classify(colors)

	assert.Equal(t, 1, got.Total())
	require.Len(t, got.Dropped, 2)
	assert.Equal(t, "Mystery", got.Dropped[0].ItemName)
	assert.Equal(t, "Blank", got.Dropped[1].ItemName)
}

func TestClassify_CompletenessAndPurity(t *testing.T) {
	tags := []string{"Front", "Sp. Front", "Back", "Sp. Back", "Side", "", "back"}
	var colors []ColorAssignment
	for i := 0; i < 40; i++ {
		colors = append(colors, ColorAssignment{
			ItemID:             intPtr(i),
			ItemName:           "item",
			ColorSpecification: tags[(i*7)%len(tags)],
		})
	}

	got := Classify(colors)

	assert.Equal(t, len(colors), got.Total()+len(got.Dropped))
	for cat, bucket := range got.Buckets {
		for _, c := range bucket {
			assert.Equal(t, string(cat), c.Tag())
		}
	}
}

func TestClassify_IsDeterministic(t *testing.T) {
	colors := []ColorAssignment{
		{ItemName: "Red", ColorSpecification: "Front"},
		{ItemName: "Blue", FormSide: "Back"},
	}
	assert.Equal(t, Classify(colors), Classify(colors))
}
