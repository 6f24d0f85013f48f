package matching

// Match score constants. A hit contributes its matcher's score; the values
// only encode specificity ordering.
const (
	// ScoreCatchAll is the score of an expectation that declares no matchers.
	ScoreCatchAll = 1

	// ScoreMethod is the score for a method match.
	ScoreMethod = 10

	// ScoreURI is the score for a URI match.
	ScoreURI = 20

	// ScoreHeader is the score for each header match.
	ScoreHeader = 5

	// ScoreQueryParam is the score for each query parameter match.
	ScoreQueryParam = 5

	// ScoreRequestParam is the score for each form field match.
	ScoreRequestParam = 5

	// ScoreMultipart is the score for each multipart part match.
	ScoreMultipart = 5

	// ScoreContent is the score for a raw body match.
	ScoreContent = 5

	// ScoreJSON is the score for a JSON body match.
	ScoreJSON = 5

	// ScoreXML is the score for an XML body match.
	ScoreXML = 5

	// ScoreThat is the score for a request predicate match.
	ScoreThat = 5

	// ScoreJSONPath is the score per matched JSONPath condition.
	ScoreJSONPath = 5
)
