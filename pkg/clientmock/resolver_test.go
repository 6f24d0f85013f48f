package clientmock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/clientmock/pkg/request"
	"github.com/getmockd/clientmock/pkg/response"
)

func TestScoreResolver_EmptyCollection(t *testing.T) {
	_, err := ScoreResolver{}.Resolve(NewCollection(), newRequest("GET", "/query"))

	require.ErrorIs(t, err, ErrNoExpectations)
	assert.Equal(t, "No mock request builders given for:\nGET /query\n", err.Error())
}

func TestScoreResolver_NoMatchWithMissingKeys(t *testing.T) {
	e := NewExpectation().
		Name("test-with-missing").
		Method("POST").
		URI("/query").
		Header("Accept", "text/plain").
		QueryParam("filter", "lastname").
		RequestParam("firstname", "tester").
		Multipart("file", MultipartSpec{}).
		Content("this is plain text")

	_, err := ScoreResolver{}.Resolve(collectionOf(e), newRequest("GET", "/does-not-match"))

	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, "No matching mock request builder found for:\n"+
		"GET /does-not-match\n"+
		"\n"+
		"Mock request builders:\n"+
		"#1 test-with-missing\n"+
		"  ✘ method \"GET\" does not match \"POST\" (0)\n"+
		"  ✘ uri \"/does-not-match\" does not match \"/query\" (0)\n"+
		"  ✘ header accept missing (0)\n"+
		"  ✘ queryParam filter missing (0)\n"+
		"  ✘ requestParam firstname missing (0)\n"+
		"  ✘ multipart file missing (0)\n"+
		"  ✘ content \"NULL\" does not match \"this is plain text\" (0)\n",
		err.Error())
}

func TestScoreResolver_NoMatchWithMismatchingKeys(t *testing.T) {
	e := NewExpectation().
		Name("test-with-mismatch").
		Method("GET").
		URI("/query").
		Header("Accept", "text/plain").
		QueryParam("filter", "lastname").
		RequestParam("firstname", "tester").
		Multipart("file", MultipartSpec{Mimetype: "picture.jpg"}).
		Content("this is plain text")

	r := newRequest("GET", "/query")
	r.Headers["accept"] = "text/csv"
	r.Content = request.StringPtr("text")
	r.QueryParams["filter"] = request.Value("firstname")
	r.RequestParams["firstname"] = "peter"
	r.Multiparts["file"] = request.Multipart{Name: "file", Filename: request.StringPtr("wrong.jpg")}

	_, err := ScoreResolver{}.Resolve(collectionOf(e), r)

	require.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, "No matching mock request builder found for:\n"+
		"GET /query?filter=firstname\n"+
		"accept: text/csv\n"+
		"&firstname=peter\n"+
		"\n"+
		"Mock request builders:\n"+
		"#1 test-with-mismatch\n"+
		"  ✔ method matches \"GET\" (10)\n"+
		"  ✔ uri matches \"/query\" (20)\n"+
		"  ✘ header accept \"text/csv\" does not match \"text/plain\" (0)\n"+
		"  ✘ queryParam filter \"firstname\" does not match \"lastname\" (0)\n"+
		"  ✘ requestParam firstname \"peter\" does not match \"tester\" (0)\n"+
		"  ✘ multipart file \"{\"name\":\"file\",\"mimetype\":null}\" does not match \"{\"name\":\"file\",\"mimetype\":\"picture.jpg\"}\" (0)\n"+
		"  ✘ content \"text\" does not match \"this is plain text\" (0)\n",
		err.Error())
}

func TestScoreResolver_NoMatchWithContent(t *testing.T) {
	e := NewExpectation().
		Name("test-with-content").
		Method("GET").
		URI("/query").
		Header("Accept", "text/plain").
		QueryParam("filter", "lastname").
		Content("this is plain text")

	r := newRequest("GET", "/query")
	r.Headers["accept"] = "text/plain"
	r.Content = request.StringPtr("this is non-matching-text")
	r.QueryParams["filter"] = request.Value("lastname")

	_, err := ScoreResolver{}.Resolve(collectionOf(e), r)

	require.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, "No matching mock request builder found for:\n"+
		"GET /query?filter=lastname\n"+
		"accept: text/plain\n"+
		"this is non-matching-text\n"+
		"\n"+
		"Mock request builders:\n"+
		"#1 test-with-content\n"+
		"  ✔ method matches \"GET\" (10)\n"+
		"  ✔ uri matches \"/query\" (20)\n"+
		"  ✔ header accept matches \"text/plain\" (5)\n"+
		"  ✔ queryParam filter matches \"lastname\" (5)\n"+
		"  ✘ content \"this is non-matching-text\" does not match \"this is plain text\" (0)\n",
		err.Error())
}

func TestScoreResolver_NoMatchWithJSONCarriesDiff(t *testing.T) {
	e := NewExpectation().
		Name("test-with-json").
		Method("GET").
		URI("/query").
		JSON(map[string]any{
			"firstname": "peter",
			"address":   map[string]any{"street": "peterstreet 1", "zip": "12345", "city": "peterstown"},
		})

	r := newRequest("GET", "/query")
	r.JSON = map[string]any{
		"firstname": "peter",
		"address":   map[string]any{"street": "bobstreet 1", "zip": "12345", "city": "peterstown"},
	}

	_, err := ScoreResolver{}.Resolve(collectionOf(e), r)

	require.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, "No matching mock request builder found for:\n"+
		"GET /query\n"+
		"{\"address\":{\"city\":\"peterstown\",\"street\":\"bobstreet 1\",\"zip\":\"12345\"},\"firstname\":\"peter\"}\n"+
		"\n"+
		"Mock request builders:\n"+
		"#1 test-with-json\n"+
		"  ✔ method matches \"GET\" (10)\n"+
		"  ✔ uri matches \"/query\" (20)\n"+
		"  ✘ json \"{\"address\":{\"city\":\"peterstown\",\"street\":\"bobstreet 1\",\"zip\":\"12345\"},\"firstname\":\"peter\"}\" "+
		"does not match \"{\"address\":{\"city\":\"peterstown\",\"street\":\"peterstreet 1\",\"zip\":\"12345\"},\"firstname\":\"peter\"}\" (0)\n"+
		"    --- Expected\n"+
		"    +++ Actual\n"+
		"    @@ @@\n"+
		"     {\n"+
		"         \"address\": {\n"+
		"             \"city\": \"peterstown\",\n"+
		"    -        \"street\": \"peterstreet 1\",\n"+
		"    +        \"street\": \"bobstreet 1\",\n"+
		"             \"zip\": \"12345\"\n"+
		"         },\n"+
		"         \"firstname\": \"peter\"\n",
		err.Error())
}

func TestScoreResolver_NoMatchListsEveryExpectation(t *testing.T) {
	a := NewExpectation().Method("POST")
	b := NewExpectation().Name("second").Method("PUT")

	_, err := ScoreResolver{}.Resolve(collectionOf(a, b), newRequest("GET", "/"))

	require.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, err.Error(), "#1 (unnamed)\n")
	assert.Contains(t, err.Error(), "#2 second\n")
}

func TestScoreResolver_Match(t *testing.T) {
	e := NewExpectation().Method("GET").URI("/query")

	got, err := ScoreResolver{}.Resolve(collectionOf(e), newRequest("GET", "/query"))

	require.NoError(t, err)
	assert.Same(t, e, got)
}

func TestScoreResolver_SoftMatchingIgnoresUndeclaredParams(t *testing.T) {
	e := NewExpectation().Method("GET").URI("/query")
	r := newRequest("GET", "/query")
	r.QueryParams["foo"] = request.Value("1337")

	got, err := ScoreResolver{}.Resolve(collectionOf(e), r)

	require.NoError(t, err)
	assert.Same(t, e, got)
}

func TestScoreResolver_BestMatchWins(t *testing.T) {
	loose := NewExpectation().Method("GET").URI("/query")
	strict := NewExpectation().Method("GET").URI("/query").QueryParam("foo", "1337")
	r := newRequest("GET", "/query")
	r.QueryParams["foo"] = request.Value("1337")

	got, err := ScoreResolver{}.Resolve(collectionOf(loose, strict), r)

	require.NoError(t, err)
	assert.Same(t, strict, got)
	assert.Equal(t, 35, strict.Matcher().Match(r).Score())
	assert.Equal(t, 30, loose.Matcher().Match(r).Score())
}

func TestScoreResolver_TieGoesToFirstRegistered(t *testing.T) {
	first := NewExpectation().Method("GET").URI("/query").WillRespond(response.New())
	second := NewExpectation().Method("GET").URI("/query").WillRespond(response.New())

	got, err := ScoreResolver{}.Resolve(collectionOf(first, second), newRequest("GET", "/query"))

	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestScoreResolver_SkipsExhaustedExpectations(t *testing.T) {
	first := NewExpectation().Method("GET").URI("/query").WillRespond(response.New())
	second := NewExpectation().Method("GET").URI("/query").WillRespond(response.New())
	c := collectionOf(first, second)

	_, err := first.NextResponse()
	require.NoError(t, err)

	got, err := ScoreResolver{}.Resolve(c, newRequest("GET", "/query"))
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestScoreResolver_LowerScoreWithResponseBeatsExhaustedBest(t *testing.T) {
	one := NewExpectation().Name("one").Method("GET").URI("/query").QueryParam("foo", "1337").WillRespond(response.New())
	two := NewExpectation().Name("two").Method("GET").URI("/query").WillRespond(response.New())
	c := collectionOf(one, two)

	_, err := one.NextResponse()
	require.NoError(t, err)

	r := newRequest("GET", "/query")
	r.QueryParams["foo"] = request.Value("1337")

	got, err := ScoreResolver{}.Resolve(c, r)
	require.NoError(t, err)
	assert.Same(t, two, got)
}

func TestScoreResolver_AllExhaustedFallsBackToBest(t *testing.T) {
	one := NewExpectation().Method("GET").URI("/query").QueryParam("foo", "1337")
	two := NewExpectation().Method("GET").URI("/query")
	r := newRequest("GET", "/query")
	r.QueryParams["foo"] = request.Value("1337")

	got, err := ScoreResolver{}.Resolve(collectionOf(one, two), r)
	require.NoError(t, err)
	assert.Same(t, one, got)
}

func TestWithResolver(t *testing.T) {
	errCustom := errors.New("custom")
	c := NewCollection(WithResolver(ResolverFunc(func(*Collection, *request.Request) (*Expectation, error) {
		return nil, errCustom
	})))
	c.Expect("GET", "/")

	_, err := c.Do("GET", "/", request.Options{})
	assert.ErrorIs(t, err, errCustom)
}
