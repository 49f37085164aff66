package playground

import "sort"

// Scenarios are the reference walkthroughs replayed by cmd/run.
var Scenarios = map[string]string{
	"basic": `# adopt a raw value, alias it, let the alias go out of scope
new sp1 42
count sp1
copy sp2 sp1
count sp1
count sp2
drop sp2
count sp1

# assign into an empty handle, then move-construct from the source
empty sp3
count sp3
assign sp3 sp1
count sp1
count sp3
move sp4 sp1
get sp4
get sp3
get sp1

# move-assign empties the source
empty sp5
mvassign sp5 sp3
get sp5
count sp5
get sp3
`,

	"clone": `# three handles share one value through chained assignment
new dsp1 3.14
empty dsp2
empty dsp3
assign dsp2 dsp1
assign dsp3 dsp2
list

# diverge the first handle onto a private copy
clone dsp1
list
clone dsp1
`,
}

// ScenarioNames returns the scenario names in order.
func ScenarioNames() []string {
	names := make([]string, 0, len(Scenarios))
	for name := range Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
