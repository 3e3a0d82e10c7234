package wordfencer

// WordEntity is a reference word stored in a document store collection.
type WordEntity struct {
	ID      string `docstore:"id"`
	Variant string `docstore:"variant"`
	Word    string `docstore:"word"`
}

func wordEntityID(v Variant, word string) string {
	return string(v) + "/" + word
}

// snapshot is the cached form of a lexicon. Words are stored as one stream of code points
// plus the length of every word, both compressed with compints.
type snapshot struct {
	Variant    string
	Count      int
	Lengths    []byte
	CodePoints []byte
}
