package extract

import "testing"

func TestTextFromHTML(t *testing.T) {
	fragment := `<div><h2>Open  Mic</h2><p>Friday, 3 Oct<br>8 PM</p><script>alert(1)</script><p>Venue: The&nbsp;Loft</p></div>`
	got, err := TextFromHTML(fragment)
	if err != nil {
		t.Fatalf("text from html: %v", err)
	}
	want := "Open Mic\nFriday, 3 Oct\n8 PM\nVenue: The Loft"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
