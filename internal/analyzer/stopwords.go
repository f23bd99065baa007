package analyzer

// stopwords is the closed set of common English words dropped during
// tokenization. Deliberately data, not derived from any algorithm — swap
// the whole set to retune recall/precision.
var stopwords = buildStopwordSet([]string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "aren't", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot", "could",
	"couldn't", "did", "didn't", "do", "does", "doesn't", "doing", "don't",
	"down", "during", "each", "few", "for", "from", "further", "had", "hadn't",
	"has", "hasn't", "have", "haven't", "having", "he", "he'd", "he'll", "he's",
	"her", "here", "here's", "hers", "herself", "him", "himself", "his", "how",
	"how's", "i", "i'd", "i'll", "i'm", "i've", "if", "in", "into", "is",
	"isn't", "it", "it's", "its", "itself", "let's", "me", "more", "most",
	"mustn't", "my", "myself", "no", "nor", "not", "of", "off", "on", "once",
	"only", "or", "other", "ought", "our", "ours", "ourselves", "out", "over",
	"own", "same", "shan't", "she", "she'd", "she'll", "she's", "should",
	"shouldn't", "so", "some", "such", "than", "that", "that's", "the", "their",
	"theirs", "them", "themselves", "then", "there", "there's", "these", "they",
	"they'd", "they'll", "they're", "they've", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "wasn't", "we", "we'd",
	"we'll", "we're", "we've", "were", "weren't", "what", "what's", "when",
	"when's", "where", "where's", "which", "while", "who", "who's", "whom",
	"why", "why's", "with", "won't", "would", "wouldn't", "you", "you'd",
	"you'll", "you're", "you've", "your", "yours", "yourself", "yourselves",
	"able", "about", "across", "actually", "also", "although", "always",
	"among", "another", "anyone", "anything", "anywhere", "around", "back",
	"became", "become", "becomes", "before", "behind", "better", "beyond",
	"came", "come", "comes", "could", "either", "else", "especially", "etc",
	"ever", "every", "everyone", "everything", "everywhere", "except", "first",
	"get", "gets", "getting", "given", "gives", "go", "goes", "going", "gone",
	"got", "greater", "hence", "hereby", "herein", "hereupon", "however",
	"indeed", "instead", "just", "keep", "keeps", "kept", "last", "later",
	"least", "less", "like", "likely", "look", "looks", "made", "make",
	"makes", "making", "many", "may", "maybe", "meanwhile", "might", "moreover",
	"much", "must", "near", "need", "needs", "neither", "never",
	"nevertheless", "new", "next", "none", "nonetheless", "nothing", "now",
	"nowhere", "often", "okay", "one", "ones", "onto", "otherwise", "perhaps",
	"please", "put", "rather", "really", "regarding", "said", "say", "says",
	"see", "seem", "seemed", "seeming", "seems", "several", "shall", "shown",
	"since", "simply", "somehow", "someone", "something", "sometimes",
	"somewhat", "somewhere", "still", "sure", "take", "taken", "thereafter",
	"thereby", "therefore", "therein", "thereupon", "thus", "together",
	"toward", "towards", "two", "unless", "unlike", "upon", "use", "used",
	"uses", "using", "various", "via", "want", "wants", "well", "whatever",
	"whenever", "whereas", "whereby", "wherein", "whereupon", "wherever",
	"whether", "whichever", "whoever", "whole", "whose", "within", "without",
	"yet",
})

func buildStopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
