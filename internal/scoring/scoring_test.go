package scoring

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionExam(passing int) Assessment {
	return Assessment{
		PassingScore: passing,
		Questions: []Question{
			{ID: 1, Answers: []Answer{{ID: 10, IsCorrect: true}, {ID: 11}}},
			{ID: 2, Answers: []Answer{{ID: 20}, {ID: 21, IsCorrect: true}}},
		},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		assessment Assessment
		submission Submission
		wantScore  int
		wantPassed bool
		wantCount  int
	}{
		{
			name:       "all correct passes",
			assessment: twoQuestionExam(70),
			submission: Submission{{1, 10}, {2, 21}},
			wantScore:  100,
			wantPassed: true,
			wantCount:  2,
		},
		{
			name:       "half correct below threshold",
			assessment: twoQuestionExam(70),
			submission: Submission{{1, 10}, {2, 20}},
			wantScore:  50,
			wantPassed: false,
			wantCount:  1,
		},
		{
			name:       "omitted answers keep the question denominator",
			assessment: twoQuestionExam(50),
			submission: Submission{{2, 21}},
			wantScore:  50,
			wantPassed: true,
			wantCount:  1,
		},
		{
			name:       "empty submission scores zero",
			assessment: twoQuestionExam(0),
			submission: nil,
			wantScore:  0,
			wantPassed: true,
		},
		{
			name:       "unknown ids are discounted",
			assessment: twoQuestionExam(10),
			submission: Submission{{99, 10}, {1, 99}},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name:       "answer of another question does not match",
			assessment: twoQuestionExam(10),
			submission: Submission{{1, 21}},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name:       "every pair counts, repeats included",
			assessment: twoQuestionExam(50),
			submission: Submission{{1, 11}, {1, 10}},
			wantScore:  50,
			wantPassed: true,
			wantCount:  1,
		},
		{
			name:       "repeated correct pairs are capped at 100",
			assessment: twoQuestionExam(100),
			submission: Submission{{1, 10}, {1, 10}, {2, 21}},
			wantScore:  100,
			wantPassed: true,
			wantCount:  3,
		},
		{
			name:       "zero ids never resolve",
			assessment: twoQuestionExam(10),
			submission: Submission{{0, 10}, {1, 0}},
			wantScore:  0,
			wantPassed: false,
		},
		{
			name: "truncates rather than rounds",
			assessment: Assessment{PassingScore: 67, Questions: []Question{
				{ID: 1, Answers: []Answer{{ID: 1, IsCorrect: true}}},
				{ID: 2, Answers: []Answer{{ID: 2, IsCorrect: true}}},
				{ID: 3, Answers: []Answer{{ID: 3, IsCorrect: true}}},
			}},
			submission: Submission{{1, 1}, {2, 2}},
			wantScore:  66,
			wantPassed: false,
			wantCount:  2,
		},
		{
			name: "question without a correct answer never contributes",
			assessment: Assessment{PassingScore: 1, Questions: []Question{
				{ID: 1, Answers: []Answer{{ID: 1}, {ID: 2}}},
			}},
			submission: Submission{{1, 1}},
			wantScore:  0,
			wantPassed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.assessment, tt.submission)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Equal(t, tt.wantCount, result.CorrectCount)
		})
	}
}

func TestScore_NoQuestions(t *testing.T) {
	empty := Assessment{PassingScore: 0}
	result := Score(empty, Submission{{1, 1}, {2, 2}})
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 2, result.Discounted)

	empty.PassingScore = 1
	assert.False(t, Score(empty, nil).Passed)
}

func TestScore_ForeignQuestionIDs(t *testing.T) {
	quiz := twoQuestionExam(50)
	other := Assessment{Questions: []Question{{ID: 7, Answers: []Answer{{ID: 70, IsCorrect: true}}}}}

	result := Score(quiz, Submission{{other.Questions[0].ID, 70}})
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 1, result.Discounted)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(3, 0))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(4, 4))
}

func TestSubmission_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Submission
	}{
		{
			name: "well formed pairs",
			body: `[{"question_id":1,"answer_id":10},{"question_id":2,"answer_id":21}]`,
			want: Submission{{1, 10}, {2, 21}},
		},
		{
			name: "numeric strings are accepted",
			body: `[{"question_id":"1","answer_id":"10"}]`,
			want: Submission{{1, 10}},
		},
		{
			name: "malformed ids decode to zero",
			body: `[{"question_id":"abc","answer_id":5},{"question_id":-1,"answer_id":10},{"question_id":1.5,"answer_id":null},{"answer_id":10}]`,
			want: Submission{{0, 5}, {0, 10}, {0, 0}, {0, 10}},
		},
		{
			name: "non-object items keep their slot",
			body: `[7,"x",{"question_id":2,"answer_id":21}]`,
			want: Submission{{0, 0}, {0, 0}, {2, 21}},
		},
		{
			name: "non-array is empty",
			body: `"nope"`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Submission
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_MalformedPairsAreDiscounted(t *testing.T) {
	var submission Submission
	require.NoError(t, json.Unmarshal(
		[]byte(`[{"question_id":"abc","answer_id":10},{"question_id":-1,"answer_id":21},{"question_id":2,"answer_id":21}]`),
		&submission))

	result := Score(twoQuestionExam(50), submission)
	assert.Equal(t, 50, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 1, result.CorrectCount)
	assert.Equal(t, 2, result.Discounted)
}
