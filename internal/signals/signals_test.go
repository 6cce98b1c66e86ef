package signals

import (
	"fmt"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

func lex(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	l, err := lexicon.Default()
	require.NoError(t, err)
	return l
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "data analyst r biology", Normalize("Data-Analyst, (R) & biology!!"))
	assert.Equal(t, "office efficiency", Normalize("Oﬃce eﬃciency"))
	assert.Equal(t, "", Normalize("  ...  "))
}

func TestTokens_DropsStopWords(t *testing.T) {
	got := Tokens(lex(t), "Looking for a Data Analyst with R and biology skills, Bachelor required")

	assert.Equal(t,
		[]string{"analyst", "bachelor", "biology", "data", "looking", "r", "required", "skills"},
		sortedKeys(got))
}

func TestKeywords(t *testing.T) {
	res := Keywords(lex(t), "Experienced data analyst skilled in R", "Data Analyst with R and biology")

	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 1, res.Missing)
	assert.InDelta(t, 0.75, res.Density, 1e-9)
	assert.Equal(t, []string{"analyst", "data", "r"}, res.MatchedKeywords)
	assert.Equal(t, []string{"biology"}, res.MissingKeywords)
}

func TestKeywords_EmptyJobHasZeroDensity(t *testing.T) {
	for _, job := range []string{"", "   ", "the and of with", "!!! ---"} {
		res := Keywords(lex(t), "Engineer with Go experience", job)
		assert.Equal(t, 0.0, res.Density, "job %q", job)
		assert.Equal(t, 0, res.Matched)
		assert.Equal(t, 0, res.Missing)
	}
}

func TestExperience(t *testing.T) {
	res := Experience("\nSenior Engineer at X\nData Analyst at Y\n", "We need an Analyst or Scientist")

	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"Analyst"}, res.MatchedTitles)
	assert.Equal(t, []string{"Analyst", "Engineer"}, res.ResumeTitles)
	assert.Equal(t, []string{"Analyst", "Scientist"}, res.JobTitles)
}

func TestExperience_CaseSensitiveWholeWord(t *testing.T) {
	res := Experience("engineer, Engineering lead, Managers", "Engineer Manager")

	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.ResumeTitles)
}

func TestExperience_EmptySection(t *testing.T) {
	res := Experience("", "Data Analyst")
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.MatchedTitles)
}

func TestSkills_SetArithmetic(t *testing.T) {
	tests := []struct {
		name        string
		resume, job []string
		matched     int
		missing     int
	}{
		{name: "overlap", resume: []string{"r", "data", "analysis"}, job: []string{"r", "biology", "data", "analysis"}, matched: 3, missing: 1},
		{name: "disjoint", resume: []string{"go"}, job: []string{"java", "sql"}, matched: 0, missing: 2},
		{name: "empty job", resume: []string{"go"}, job: nil, matched: 0, missing: 0},
		{name: "empty resume", resume: nil, job: []string{"go", "sql"}, matched: 0, missing: 2},
		{name: "resume superset", resume: []string{"go", "sql", "k8s"}, job: []string{"go"}, matched: 1, missing: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := setOf(tt.resume), setOf(tt.job)
			res := Skills(a, b)

			assert.Equal(t, tt.matched, res.Matched)
			assert.Equal(t, tt.missing, res.Missing)
			assert.Equal(t, len(b), res.Matched+res.Missing)
			for _, s := range res.MatchedSkills {
				assert.Contains(t, a, s)
				assert.Contains(t, b, s)
			}
			for _, s := range res.MissingSkills {
				assert.NotContains(t, a, s)
			}
		})
	}
}

func TestEducation(t *testing.T) {
	tests := []struct {
		name     string
		section  string
		required string
		want     bool
	}{
		{name: "exact", section: "Bachelor of Science", required: "Bachelor", want: true},
		{name: "case insensitive", section: "Master of Arts", required: "master", want: true},
		{name: "long requirement", section: "Bachelor of Science", required: "Bachelor of Science", want: true},
		{name: "phd", section: "PhD, Genomics", required: "phd", want: true},
		{name: "different degree", section: "Bachelor of Arts", required: "Master", want: false},
		{name: "no degree words", section: "Some college", required: "Bachelor", want: false},
		{name: "empty requirement", section: "Bachelor", required: "", want: false},
		{name: "lowercase degree word ignored", section: "bachelor of science", required: "Bachelor", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Education(tt.section, tt.required).Verified)
		})
	}
}

func TestEducation_EmptySectionNeverVerified(t *testing.T) {
	for _, req := range []string{"", "Bachelor", "Master", "PhD", "anything", "b"} {
		res := Education("", req)
		assert.False(t, res.Verified, req)
		assert.Empty(t, res.DegreesFound)
	}
}

func TestDegreeMentioned(t *testing.T) {
	assert.Equal(t, "Bachelor", DegreeMentioned("Bachelor required, Master preferred"))
	assert.Equal(t, "", DegreeMentioned("No degree needed"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		clean bool
	}{
		{name: "clean", text: "Jane Doe\nEngineer\nSkills: Go", clean: true},
		{name: "empty", text: "", clean: true},
		{name: "tab", text: "Skills:\tGo", clean: false},
		{name: "blank line", text: "Jane\n\nEngineer", clean: false},
		{name: "many blank lines", text: "Jane\n\n\n\nEngineer", clean: false},
		{name: "html tag", text: "Jane <b>Doe</b>", clean: false},
		{name: "bare angle", text: "latency < 5ms", clean: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.clean, Format(tt.text).Clean)
		})
	}

	res := Format("a\tb\n\n<p>")
	assert.True(t, res.HasTabs)
	assert.True(t, res.HasBlankLines)
	assert.True(t, res.HasHTMLTags)
}

func TestAchievements(t *testing.T) {
	res := Achievements("We increased revenue by 20% and reduced costs by 15%")
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"increased revenue by 20%", "reduced costs by 15%"}, res.Phrases)
}

func TestAchievements_Boundaries(t *testing.T) {
	assert.Equal(t, 1, Achievements("IMPROVED throughput 40%").Count)
	assert.Equal(t, 0, Achievements("Increased revenue\nby 20%").Count)
	assert.Equal(t, 0, Achievements("Increased revenue significantly").Count)
	assert.Equal(t, 0, Achievements("Reincreased output by 5%").Count)
	assert.Equal(t, 1, Achievements("Grew 10% then 20% again").Count)
}

func TestDiversity(t *testing.T) {
	res := Diversity("Mentor for first-generation students; led LGBTQ+ ERG; diverse teams; Diverse hiring")
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []string{"diverse", "first-generation", "LGBTQ+"}, res.Terms)
}

func TestDiversity_BoundedByVocabulary(t *testing.T) {
	text := strings.Repeat(strings.Join(DiversityTerms, " ")+" ", 5)
	res := Diversity(text)
	assert.Equal(t, len(DiversityTerms), res.Count)
	assert.LessOrEqual(t, res.Count, 10)
}

func TestContact(t *testing.T) {
	text := "Jane Doe jane@example.com 5551234567\nhttps://linkedin.com/in/jane jane@example.com\nphone 123"

	res := Contact(text)
	assert.Equal(t, []string{"jane@example.com"}, res.Emails)
	assert.Equal(t, []string{"5551234567"}, res.Phones)
	assert.Equal(t, []string{"https://linkedin.com/in/jane"}, res.Links)

	empty := Contact("")
	assert.Empty(t, empty.Emails)
	assert.NotNil(t, empty.Phones)
}

func TestLanguage_Misspellings(t *testing.T) {
	res := Language(lex(t), "I recieved the award. Managed a team of 12 engineers at ACME.")

	assert.Equal(t, []string{"recieved"}, res.Misspelled)
	assert.Equal(t, 1, res.MisspelledCount)
	assert.Equal(t, []types.Correction{
		{Original: "I recieved the award.", Corrected: "I received the award."},
	}, res.Corrections)
	assert.Equal(t, 9, res.WordsChecked)
}

func TestLanguage_CountsEveryOccurrence(t *testing.T) {
	res := Language(lex(t), "Teh build passed. Teh deploy failed. Teh rollback worked.")

	assert.Equal(t, []string{"teh"}, res.Misspelled)
	assert.Equal(t, 3, res.MisspelledCount)
	assert.Equal(t, 9, res.WordsChecked)
}

func TestLanguage_PreservesCapitalization(t *testing.T) {
	res := Language(lex(t), "Teh project shipped.")

	require.Len(t, res.Corrections, 1)
	assert.Equal(t, "The project shipped.", res.Corrections[0].Corrected)
}

func TestLanguage_SkipsUncheckableTokens(t *testing.T) {
	res := Language(lex(t), "Contact jane@example.com or https://x.io/zzq SQL AWS 2024 Q3 team's")

	assert.Empty(t, res.Misspelled)
	assert.Empty(t, res.Corrections)
}

func TestLanguage_Deterministic(t *testing.T) {
	text := "Developped a pipline that improoved acuracy. Colaborated with analysts."
	first := Language(lex(t), text)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Language(lex(t), text), fmt.Sprintf("run %d", i))
	}
}

func TestLanguage_ResumeProseHasNoFalsePositives(t *testing.T) {
	text := "Spearheaded migration of legacy billing platform to serverless architecture.\n" +
		"Negotiated vendor contracts, cutting procurement overhead.\n" +
		"Mentored junior analysts and streamlined quarterly forecasting workflows."
	res := Language(lex(t), text)

	assert.Empty(t, res.Misspelled)
	assert.Empty(t, res.Corrections)
}

func TestLanguage_CorrectionsAreDictionaryWords(t *testing.T) {
	l := lex(t)
	text := "Developped a pipline that improoved acuracy. Colaborated with analysts. " +
		"Recieved recogniton for buisness reporting. Maintaned teh infrastucture."
	res := Language(l, text)
	require.NotEmpty(t, res.Corrections)

	for _, c := range res.Corrections {
		before, after := strings.Fields(c.Original), strings.Fields(c.Corrected)
		require.Len(t, after, len(before))
		for i := range after {
			if before[i] == after[i] {
				continue
			}
			w := strings.ToLower(strings.TrimFunc(after[i], func(r rune) bool { return !unicode.IsLetter(r) }))
			_, ok := l.Rank(w)
			assert.True(t, ok, "%q corrected to %q, which is not a dictionary entry", before[i], w)
		}
	}
}

func TestOneEdit(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"teh", "the", true},
		{"contrcts", "contracts", true},
		{"contracts", "contacts", true},
		{"cat", "cut", true},
		{"cat", "cat", false},
		{"cat", "dog", false},
		{"serverless", "serverness", false},
		{"ab", "abcd", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, oneEdit(tt.a, tt.b), "%s/%s", tt.a, tt.b)
	}
}

func TestSentences(t *testing.T) {
	got := Sentences("Reach me at jane@example.com. Built APIs!  Shipped v2?\nSkills: Go, SQL\n\n")
	assert.Equal(t, []string{
		"Reach me at jane@example.com.",
		"Built APIs!",
		"Shipped v2?",
		"Skills: Go, SQL",
	}, got)
}
