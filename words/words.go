// Package words holds the static catalog of (word, hint) pairs eligible for
// selection. The hint is the single clue shown to the impostor when hints
// are enabled.
package words

type Entry struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
}

var Pool = []Entry{
	{Word: "PIZZA", Hint: "CHEESE"},
	{Word: "UMBRELLA", Hint: "RAIN"},
	{Word: "PYRAMID", Hint: "EGYPT"},
	{Word: "HEADPHONES", Hint: "MUSIC"},
	{Word: "BEACH", Hint: "SAND"},
	{Word: "HOSPITAL", Hint: "DOCTOR"},
	{Word: "KANGAROO", Hint: "POUCH"},
	{Word: "OPERA", Hint: "SINGING"},
	{Word: "VOLCANO", Hint: "LAVA"},
	{Word: "LAPTOP", Hint: "KEYBOARD"},
	{Word: "BICYCLE", Hint: "PEDAL"},
	{Word: "TELESCOPE", Hint: "STARS"},
	{Word: "LIGHTHOUSE", Hint: "COAST"},
	{Word: "SUBMARINE", Hint: "OCEAN"},
	{Word: "CIRCUS", Hint: "CLOWN"},
	{Word: "LIBRARY", Hint: "BOOKS"},
	{Word: "GLACIER", Hint: "ICE"},
	{Word: "ORCHESTRA", Hint: "VIOLIN"},
	{Word: "CACTUS", Hint: "DESERT"},
	{Word: "WINDMILL", Hint: "BLADES"},
	{Word: "CASTLE", Hint: "MOAT"},
	{Word: "SAUNA", Hint: "STEAM"},
	{Word: "PENGUIN", Hint: "TUXEDO"},
	{Word: "HONEY", Hint: "BEES"},
	{Word: "PASSPORT", Hint: "TRAVEL"},
	{Word: "CAMPFIRE", Hint: "MARSHMALLOW"},
	{Word: "AQUARIUM", Hint: "FISH"},
	{Word: "TORNADO", Hint: "WIND"},
	{Word: "CHESS", Hint: "CHECKMATE"},
	{Word: "BAKERY", Hint: "BREAD"},
	{Word: "SATELLITE", Hint: "ORBIT"},
	{Word: "VAMPIRE", Hint: "GARLIC"},
	{Word: "WATERFALL", Hint: "MIST"},
	{Word: "ELEVATOR", Hint: "BUTTONS"},
	{Word: "SNOWMAN", Hint: "CARROT"},
	{Word: "PIRATE", Hint: "PARROT"},
	{Word: "MUSEUM", Hint: "EXHIBIT"},
	{Word: "ROLLERCOASTER", Hint: "LOOP"},
	{Word: "TOOTHBRUSH", Hint: "MINT"},
	{Word: "AIRPORT", Hint: "LUGGAGE"},
	{Word: "JUNGLE", Hint: "VINES"},
	{Word: "ROBOT", Hint: "CIRCUITS"},
	{Word: "GARDEN", Hint: "SOIL"},
	{Word: "THEATER", Hint: "CURTAIN"},
	{Word: "MICROSCOPE", Hint: "LENS"},
	{Word: "HAMMOCK", Hint: "NAP"},
	{Word: "FIREWORKS", Hint: "SPARKS"},
	{Word: "IGLOO", Hint: "BLOCKS"},
}

// Available returns the entries of pool whose word is not in used.
func Available(pool []Entry, used []string) []Entry {
	if len(used) == 0 {
		return pool
	}
	seen := make(map[string]struct{}, len(used))
	for _, w := range used {
		seen[w] = struct{}{}
	}
	out := make([]Entry, 0, len(pool))
	for _, e := range pool {
		if _, ok := seen[e.Word]; !ok {
			out = append(out, e)
		}
	}
	return out
}
