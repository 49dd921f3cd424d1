package codegen

var adjectives = []string{
	"amber", "brisk", "calm", "dusty", "eager", "fuzzy", "gentle", "hollow", "icy", "jolly",
	"keen", "lively", "mellow", "nimble", "odd", "plucky", "quiet", "rusty", "sunny", "tidy",
	"upbeat", "vivid", "witty", "young", "zesty", "bold", "cozy", "lucky", "swift", "shiny",
}

var nouns = []string{
	"otter", "falcon", "badger", "heron", "lynx", "marmot", "newt", "owl", "panda", "quail",
	"raven", "salmon", "tapir", "walrus", "yak", "zebra", "beetle", "cobra", "dingo", "ferret",
	"gecko", "ibis", "jackal", "koala", "lemur", "moose", "ocelot", "puffin", "robin", "seal",
}

var places = []string{
	"harbor", "meadow", "canyon", "summit", "lagoon", "prairie", "glacier", "orchard", "valley", "island",
	"forest", "delta", "dune", "fjord", "grove", "marsh", "mesa", "oasis", "reef", "ridge",
	"tundra", "cove", "bluff", "brook", "cliff", "crater", "geyser", "hill", "lake", "pond",
}
