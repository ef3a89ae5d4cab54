package corpus

// English/Malayalam sentence pairs used when no corpus file is given
var samplePairs = [][2]string{
	{"I love reading books", "ഞാൻ പുസ്തകങ്ങൾ വായിക്കാൻ ഇഷ്ടപ്പെടുന്നു"},
	{"She is a good teacher", "അവൾ ഒരു നല്ല അധ്യാപികയാണ്"},
	{"The cat is sleeping", "പൂച്ച ഉറങ്ങുകയാണ്"},
	{"He likes playing cricket", "അവൻ ക്രിക്കറ്റ് കളിക്കാൻ ഇഷ്ടപ്പെടുന്നു"},
	{"We are learning Malayalam", "ഞങ്ങൾ മലയാളം പഠിക്കുന്നു"},
}

// Sample returns a small built-in English/Malayalam corpus.
func Sample() *Corpus {
	c := &Corpus{}
	for _, p := range samplePairs {
		c.Add(p[0], p[1])
	}
	return c
}
