package fortune

// DefaultCatalog is the fixed, ordered list of classic fortunes. Selection is
// index-stable, so reordering or removing entries changes which fortune a
// given seed maps to. Appending is safe.
var DefaultCatalog = []string{
	"A small act of patience today will untangle a large knot tomorrow.",
	"The conversation you keep postponing is shorter than you fear.",
	"Someone remembers a kindness you have already forgotten.",
	"What you repair today will hold longer than what you replace.",
	"Listen twice before you answer once, and the day will turn your way.",
	"An old door you thought closed is only unlatched.",
	"Your silence is being read. Say the warm thing out loud.",
	"The distance between you and what you want is one honest sentence.",
	"Let today be the day you stop keeping score.",
	"A slow answer given kindly beats a fast one given sharp.",
	"The person you miss is easier to reach than your pride suggests.",
	"Trust the quiet progress nobody is applauding yet.",
}
