package text_test

import (
	"fmt"

	"github.com/walteh/chatfilters/pkg/match"
	"github.com/walteh/chatfilters/pkg/text"
)

func ExampleSplice() {
	original := text.New(
		text.Run{Text: "<Steve> "},
		text.Run{Text: "hello there", Style: text.Style{Italic: true}},
	)

	searcher := match.NewLiteralSearcher("there")
	res := searcher.Search(original.String())

	var bindings []text.Binding
	for _, m := range res.Matches {
		bindings = append(bindings, text.Binding{
			Match: m,
			Replacement: text.ReplacementFunc(func(current text.StyledText, m match.Match) text.StyledText {
				return current.WithMessage("world")
			}),
		})
	}

	out, changed, err := text.Splice(original, bindings)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Text: %s\n", out)
	fmt.Printf("Markup: %s\n", out.Markup())
	fmt.Printf("Changed: %v\n", changed)

	// Output:
	// Text: <Steve> hello world
	// Markup: <Steve> {italic}hello world{/}
	// Changed: true
}
