package extract

import "testing"

func TestLooksLikeRecipe(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"keyword recipe", "Here's my favorite BAKE recipe!", true},
		{"keyword ingredients", "INGREDIENTS: flour, eggs", true},
		{"keyword cook", "Cook on medium heat", true},
		{"keyword bake", "bake at 180C", true},
		{"keyword boil", "BOIL the potatoes first", true},
		{"keyword serve", "Serve with a wedge of lime", true},
		{"mixed case", "ReCiPe of the day", true},
		{"substring match", "precooked beans work too", true},
		{"no keywords", "nice weather today", false},
		{"empty", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LooksLikeRecipe(c.text); got != c.want {
				t.Fatalf("LooksLikeRecipe(%q) = %v; want %v", c.text, got, c.want)
			}
		})
	}
}
