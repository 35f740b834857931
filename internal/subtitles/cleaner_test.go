package subtitles

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "dialogue dashes", lines: []string{"- Hi.", "- Hello."}, want: "Hi. Hello."},
		{name: "tags", lines: []string{"<i>Hello</i> World"}, want: "Hello World"},
		{name: "font tag", lines: []string{`<font color="#ffff00">Run!</font>`}, want: "Run!"},
		{name: "dash inside line kept", lines: []string{"well - maybe"}, want: "well - maybe"},
		{name: "tag before dash", lines: []string{"<i>- Hey</i>"}, want: "Hey"},
		{name: "empty", lines: nil, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.lines); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCleanTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"- <i>Hello</i>\n- there",
		"<b>- - double</b>",
		"plain text",
		"a <\nb> c",
	}
	for _, input := range inputs {
		once := CleanText(input)
		if twice := CleanText(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestIsCredit(t *testing.T) {
	credits := []string{"Subtitles by AwesomeSubs", "www.OpenSubtitles.org", "Visit https://example.com"}
	for _, text := range credits {
		if !IsCredit(text) {
			t.Fatalf("expected %q to be a credit", text)
		}
	}
	if IsCredit("Hello there!") || IsCredit("   ") {
		t.Fatal("dialogue flagged as credit")
	}
}

func TestEpisodeLabel(t *testing.T) {
	cases := []struct {
		filename string
		series   string
		want     string
	}{
		{filename: "Friends 1x02 - The One.srt", want: "S1E02"},
		{filename: "show.10x21-22.srt", want: "S10E21-22"},
		{filename: "/data/subs/5x01.srt", series: "Seinfeld", want: "Seinfeld-S5E01"},
		{filename: "random.srt", want: "n/a"},
		{filename: "random.srt", series: "Seinfeld", want: "n/a"},
	}
	for _, tc := range cases {
		if got := EpisodeLabel(tc.filename, tc.series); got != tc.want {
			t.Fatalf("EpisodeLabel(%q, %q) = %q want %q", tc.filename, tc.series, got, tc.want)
		}
	}
}
