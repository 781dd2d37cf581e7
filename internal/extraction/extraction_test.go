package extraction

import (
	"strings"
	"testing"

	"github.com/Caia-Tech/pairforge/pkg/pair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("hello    world\t\tagain")
	assert.Equal(t, "hello world again", got)
}

func TestNormalizeCapsBlankLines(t *testing.T) {
	got := Normalize("first\n\n\n\n\nsecond")
	assert.Equal(t, "first\n\nsecond", got)
}

func TestNormalizeMergesHyphenBreaks(t *testing.T) {
	got := Normalize("transfor-\nmation complete")
	assert.Equal(t, "transformation complete", got)
}

func TestNormalizeMergesHyphenBreakAcrossPageNumber(t *testing.T) {
	got := Normalize("trans-\n42\nformation")
	assert.Equal(t, "transformation", got)
}

func TestNormalizeDropsPageNumberLines(t *testing.T) {
	got := Normalize("intro text here\n42\nmore text here")
	assert.Equal(t, "intro text here\nmore text here", got)
}

func TestNormalizeDropsRepeatedLines(t *testing.T) {
	got := Normalize("Annual Report\nAnnual Report\nbody text")
	assert.Equal(t, "Annual Report\nbody text", got)
}

func TestNormalizeStripsLeadingArtifacts(t *testing.T) {
	got := Normalize("~~@@ salvage this line")
	assert.Equal(t, "salvage this line", got)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t\n  "))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"hello    world",
		"first\n\n\n\n\nsecond\n\n\n\nthird",
		"hyphen-\nated text\n17\nHeader\nHeader\nbody",
		"~~• bullet line\n\n   padded   \n\n\n42\n",
		"Q: What?   \nA: That.\n\n\n",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want pair.Format
	}{
		{"cv markers", "JANE DOE\nEDUCATION\nPhD in CS\nWORK EXPERIENCE\nResearcher", pair.FormatCV},
		{"cv beats conversation", "EDUCATION\nUser: tell me about school", pair.FormatCV},
		{"faq", "Q: What is this?\nA: A thing.", pair.FormatFAQ},
		{"faq beats conversation", "Q: hi\nA: hello\nUser: hey", pair.FormatFAQ},
		{"conversation", "User: hello\nAssistant: hi there", pair.FormatConversation},
		{"json object", `{"prompt": "a", "completion": "b"}`, pair.FormatJSON},
		{"json array", `[{"prompt": "a"}]`, pair.FormatJSON},
		{"email", "From: a@b.com\nSubject: Hi\n\nBody text", pair.FormatEmail},
		{"generic fallback", "Just some plain prose without structure.", pair.FormatGeneric},
		{"empty", "", pair.FormatGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestExtractFAQ(t *testing.T) {
	text := "Q: What is Go?\nA: A programming language.\n\nQ: Who made it?\nA: Google engineers."
	candidates := ExtractFAQ(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, "What is Go?", candidates[0].Prompt)
	assert.Equal(t, "A programming language.", candidates[0].Completion)
	assert.Equal(t, []string{"faq"}, candidates[0].Tags)
	assert.Equal(t, "Who made it?", candidates[1].Prompt)
}

func TestExtractFAQSkipsUnanswered(t *testing.T) {
	text := "Q: Answered?\nA: Yes.\nQ: Orphaned question with no answer"
	candidates := ExtractFAQ(text)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Answered?", candidates[0].Prompt)
}

func TestExtractConversation(t *testing.T) {
	text := "User: How do I reset my password?\nAssistant: Click the reset link on the login page.\nCustomer: Thanks!\nAgent: You're welcome."
	candidates := ExtractConversation(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, "How do I reset my password?", candidates[0].Prompt)
	assert.Equal(t, "Click the reset link on the login page.", candidates[0].Completion)
	assert.Equal(t, []string{"conversation"}, candidates[0].Tags)
}

func TestExtractConversationMarkersAreCaseSensitive(t *testing.T) {
	text := "user: lowercase marker\nassistant: should not extract"
	assert.Empty(t, ExtractConversation(text))
}

func TestExtractJSONArray(t *testing.T) {
	candidates := ExtractJSON(`[{"question": "Q1", "answer": "A1"}, {"prompt": "Q2", "completion": "A2", "tags": ["custom"]}]`)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Q1", candidates[0].Prompt)
	assert.Equal(t, "A1", candidates[0].Completion)
	assert.Equal(t, []string{"json"}, candidates[0].Tags)
	assert.Equal(t, []string{"custom"}, candidates[1].Tags)
}

func TestExtractJSONLines(t *testing.T) {
	text := "{\"input\": \"Q1\", \"output\": \"A1\"}\n{\"prompt\": \"Q2\", \"response\": \"A2\"}"
	candidates := ExtractJSON(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, "A1", candidates[0].Completion)
	assert.Equal(t, "A2", candidates[1].Completion)
}

func TestExtractJSONMalformedYieldsNothing(t *testing.T) {
	assert.Empty(t, ExtractJSON(`[{"prompt": "unterminated`))
	assert.Empty(t, ExtractJSON(`not json at all`))
}

func TestExtractJSONDropsIncompleteRecords(t *testing.T) {
	candidates := ExtractJSON(`[{"prompt": "only a prompt"}, {"prompt": "ok", "completion": "fine"}]`)

	require.Len(t, candidates, 1)
	assert.Equal(t, "ok", candidates[0].Prompt)
}

func TestExtractCVSections(t *testing.T) {
	text := "JANE DOE\njane@example.com\n+15551234567\n\nEDUCATION\nPhD in Computer Science, MIT\n\nWORK EXPERIENCE\nStaff Engineer at Example Corp\n\nRESEARCH EXPERIENCE\nPublished papers on distributed systems"
	candidates := ExtractCV(text)

	require.Len(t, candidates, 4)

	byTag := map[string]pair.Candidate{}
	for _, c := range candidates {
		byTag[c.Tags[1]] = c
	}
	assert.Contains(t, byTag["education"].Completion, "PhD in Computer Science")
	assert.Contains(t, byTag["experience"].Completion, "Staff Engineer")
	assert.Contains(t, byTag["research"].Completion, "distributed systems")
	assert.Equal(t, "Name: JANE DOE\nEmail: jane@example.com\nPhone: +15551234567", byTag["contact"].Completion)
}

func TestExtractCVNoContactWithoutNameLine(t *testing.T) {
	candidates := ExtractCV("some intro\nEDUCATION\nBSc somewhere")
	for _, c := range candidates {
		assert.NotEqual(t, "contact", c.Tags[1])
	}
}

func TestExtractEmail(t *testing.T) {
	text := "From: alice@example.com\nTo: bob@example.com\nSubject: Quarterly planning\n\nLet's meet Tuesday to review the roadmap."
	candidates := ExtractEmail(text)

	require.Len(t, candidates, 1)
	assert.Equal(t, "Email about: Quarterly planning", candidates[0].Prompt)
	assert.Equal(t, "Let's meet Tuesday to review the roadmap.", candidates[0].Completion)
	assert.Equal(t, []string{"email"}, candidates[0].Tags)
}

func TestExtractEmailRequiresSubjectAndBody(t *testing.T) {
	assert.Empty(t, ExtractEmail("From: a@b.com\n\nBody without a subject line."))
	assert.Empty(t, ExtractEmail("Subject: No body follows"))
}

func TestExtractGenericParagraphs(t *testing.T) {
	text := "The first paragraph introduces the topic at length.\n\nThe second paragraph elaborates with more detail.\n\nThe third paragraph concludes the discussion."
	candidates := paragraphPairs(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, "The first paragraph introduces the topic at length.", candidates[0].Prompt)
	assert.Equal(t, "The second paragraph elaborates with more detail.", candidates[0].Completion)
	assert.Equal(t, []string{"generic"}, candidates[0].Tags)
}

func TestExtractGenericNumberedSections(t *testing.T) {
	text := "1. Introduction\nThis section introduces the system in some detail.\n2. Architecture\nThis section describes the layered architecture design."
	candidates := numberedSectionPairs(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, `Explain about "Introduction"`, candidates[0].Prompt)
	assert.Equal(t, []string{"section"}, candidates[0].Tags)
}

func TestExtractGenericHeadings(t *testing.T) {
	text := "SYSTEM OVERVIEW\nThe platform ingests raw text and emits training pairs.\nGetting Started Guide\nInstall the binary and point it at a directory of documents."
	candidates := headingPairs(text)

	require.Len(t, candidates, 2)
	assert.Equal(t, "What about system overview?", candidates[0].Prompt)
	assert.Equal(t, "What about getting started guide?", candidates[1].Prompt)
}

func TestExtractGenericSentenceChainGates(t *testing.T) {
	// Four sentences: below the five-sentence minimum, no candidates.
	four := "One sentence sits here nicely. Another follows right after it. A third keeps the rhythm going. A fourth wraps it up."
	assert.Empty(t, sentenceChainPairs(four))

	five := four + " A fifth sentence unlocks the chain strategy."
	candidates := sentenceChainPairs(five)
	require.NotEmpty(t, candidates)
	assert.Equal(t, []string{"sentence"}, candidates[0].Tags)
	assert.Equal(t, "One sentence sits here nicely.", candidates[0].Prompt)
}

func TestExtractGenericListItems(t *testing.T) {
	text := "• configure the ingestion pipeline\n• register extraction strategies\nnot a list line\n• tune deduplication settings\n• export the final dataset"
	candidates := listItemPairs(text)

	// Runs are bounded by the interrupting line: one pair per run.
	require.Len(t, candidates, 2)
	assert.Equal(t, "configure the ingestion pipeline", candidates[0].Prompt)
	assert.Equal(t, "tune deduplication settings", candidates[1].Prompt)
}

func TestExtractGenericImplicitQuestions(t *testing.T) {
	text := "What makes the pipeline deterministic? Every stage is a pure function of its input, so repeated runs agree byte for byte.\n\nUnrelated trailing paragraph."
	candidates := implicitQuestionPairs(text)

	require.Len(t, candidates, 1)
	assert.Equal(t, "What makes the pipeline deterministic?", candidates[0].Prompt)
	assert.Contains(t, candidates[0].Completion, "pure function")
	assert.NotContains(t, candidates[0].Completion, "Unrelated")
}

func TestExtractGenericQuestionAnswerTruncation(t *testing.T) {
	answer := strings.Repeat("This sentence pads the answer well past the cap. ", 20)
	text := "Why is the answer so long? " + answer
	candidates := implicitQuestionPairs(text)

	require.Len(t, candidates, 1)
	assert.LessOrEqual(t, len(candidates[0].Completion), maxQuestionBodyLen)
	assert.True(t, strings.HasSuffix(candidates[0].Completion, "."))
}

func TestDeduplicateByPrefix(t *testing.T) {
	base := strings.Repeat("x", dedupePrefixLen)
	candidates := []pair.Candidate{
		{Prompt: base + " first tail", Completion: "same completion"},
		{Prompt: base + " second tail", Completion: "same completion"},
		{Prompt: "a different prompt", Completion: "same completion"},
	}
	out := Deduplicate(candidates)

	require.Len(t, out, 2)
	assert.Equal(t, base+" first tail", out[0].Prompt)
	assert.Equal(t, "a different prompt", out[1].Prompt)
}

func TestDeduplicatePreservesOrder(t *testing.T) {
	candidates := []pair.Candidate{
		{Prompt: "c", Completion: "3"},
		{Prompt: "a", Completion: "1"},
		{Prompt: "c", Completion: "3"},
		{Prompt: "b", Completion: "2"},
	}
	out := Deduplicate(candidates)

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].Prompt)
	assert.Equal(t, "a", out[1].Prompt)
	assert.Equal(t, "b", out[2].Prompt)
}

func TestPipelineExtractAutoDetect(t *testing.T) {
	result := Extract("Q:  What   is this?\nA: A   test.", "")

	assert.Equal(t, pair.FormatFAQ, result.Format)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "What is this?", result.Candidates[0].Prompt)
	assert.Equal(t, "A test.", result.Candidates[0].Completion)
}

func TestPipelineExtractOverride(t *testing.T) {
	// Looks like a conversation, but the caller forces generic handling.
	text := "User: the first paragraph runs long enough.\n\nAssistant: the second paragraph also runs long."
	result := Extract(text, "generic")

	assert.Equal(t, pair.FormatGeneric, result.Format)
}

func TestPipelineExtractUnknownOverrideFallsBack(t *testing.T) {
	result := Extract("Q: Works?\nA: It does.", "no-such-format")
	assert.Equal(t, pair.FormatFAQ, result.Format)
}

func TestPipelineExtractEmptyInput(t *testing.T) {
	result := Extract("", "")
	assert.Equal(t, pair.FormatGeneric, result.Format)
	assert.Empty(t, result.Candidates)
}
