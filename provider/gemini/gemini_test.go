package gemini_provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planText = `{"workout_plan":{"daily_routine":[{"day":"Monday","focus":"Legs","exercises":[{"name":"Squats","sets":"3","reps":"12","rest":"60s"}]}]},"diet_plan":{"meal_plan":[{"day":"Monday","meals":{"lunch":{"name":"Salad","description":"Greens","calories":400}}}]},"ai_tips":{"lifestyle_tips":["Sleep"],"motivation":"Go"}}`

func testClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := config.GeminiConfig{
		APIKey:     "test-key",
		BaseURL:    srv.URL + "/v1beta/",
		PlanModel:  "plan-model",
		TTSModel:   "tts-model",
		ImageModel: "image-model",
		Timeout:    5 * time.Second,
		Retry:      config.RetryConfig{MaxAttempts: 3, BackoffBase: time.Second},
	}
	noWait := httpclient.WithSleep(func(context.Context, time.Duration) error { return nil })
	return NewGeminiClient(cfg, nil, noWait)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestGeneratePlanSendsProfileAndSchema(t *testing.T) {
	profile := models.UserProfile{Name: "A", Age: "25", FitnessGoal: "Muscle Gain"}
	profileJSON, _ := json.Marshal(profile)

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/plan-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body := decodeBody(t, r)
		contents := body["contents"].([]any)
		userText := contents[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
		assert.Equal(t, "Generate a 7-day workout and diet plan. User: "+string(profileJSON), userText)

		sys := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"].(string)
		assert.Contains(t, sys, string(profileJSON))

		gen := body["generationConfig"].(map[string]any)
		assert.Equal(t, "application/json", gen["responseMimeType"])
		assert.Equal(t, "OBJECT", gen["responseSchema"].(map[string]any)["type"])

		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{Text: planText}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	plan, err := c.GeneratePlan(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, "Squats", plan.WorkoutPlan.DailyRoutine[0].Exercises[0].Name)
	assert.Equal(t, "Salad", plan.DietPlan.MealPlan[0].Meals.Lunch.Name)
}

func TestGeneratePlanRetriesInvalidJSONThenFails(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{Text: `{"workout_plan":`}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	plan, err := c.GeneratePlan(context.Background(), models.DefaultProfile())
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, httpclient.ErrMalformedResponse)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGeneratePlanMissingCandidates(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})
	_, err := c.GeneratePlan(context.Background(), models.DefaultProfile())
	require.Error(t, err)
}

func TestSynthesizeBuildsWAV(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0x02, 0x00}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/tts-model:generateContent", r.URL.Path)
		body := decodeBody(t, r)
		text := body["contents"].([]any)[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
		assert.Equal(t, "Say with a friendly and encouraging tone: Hello", text)
		assert.Equal(t, "tts-model", body["model"])

		gen := body["generationConfig"].(map[string]any)
		assert.Equal(t, []any{"AUDIO"}, gen["responseModalities"])
		voice := gen["speechConfig"].(map[string]any)["voiceConfig"].(map[string]any)["prebuiltVoiceConfig"].(map[string]any)["voiceName"]
		assert.Equal(t, "Kore", voice)

		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{
			InlineData: &inlineData{MimeType: "audio/L16;codec=pcm;rate=24000", Data: base64.StdEncoding.EncodeToString(pcm)},
		}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})

	clip, err := c.Synthesize(context.Background(), "Monday", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Monday", clip.ID)
	assert.Equal(t, 24000, clip.SampleRate)
	assert.Equal(t, 2, clip.Samples)

	samples, rate, err := audio.DecodeWAV(clip.WAV)
	require.NoError(t, err)
	assert.Equal(t, 24000, rate)
	assert.Equal(t, []int16{1, 2}, samples)
}

func TestSynthesizeRejectsNonAudioMime(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{
			InlineData: &inlineData{MimeType: "text/plain", Data: "AAAA"},
		}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})
	_, err := c.Synthesize(context.Background(), "x", "Hello")
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSynthesizeDefaultsSampleRate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{
			InlineData: &inlineData{MimeType: "audio/L16", Data: base64.StdEncoding.EncodeToString([]byte{0, 0})},
		}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})
	clip, err := c.Synthesize(context.Background(), "x", "Hi")
	require.NoError(t, err)
	assert.Equal(t, audio.DefaultSampleRate, clip.SampleRate)
}

func TestGenerateImageReturnsDataURI(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/image-model:predict", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "a squat", body["instances"].([]any)[0].(map[string]any)["prompt"])
		assert.EqualValues(t, 1, body["parameters"].(map[string]any)["sampleCount"])
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"AAAA"}]}`))
	})

	uri, err := c.GenerateImage(context.Background(), "a squat")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", uri)
}

func TestGenerateImageRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"QkJC"}]}`))
	})
	uri, err := c.GenerateImage(context.Background(), "meal")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,QkJC", uri)
}

func TestGenerateImageEmptyPredictions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	})
	_, err := c.GenerateImage(context.Background(), "meal")
	require.Error(t, err)
}

func TestGeneratePlanAcceptsFencedJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := generateResponse{Candidates: []candidate{{Content: content{Parts: []part{{Text: "```json\n" + planText + "\n```"}}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	})
	plan, err := c.GeneratePlan(context.Background(), models.DefaultProfile())
	require.NoError(t, err)
	assert.Equal(t, "Go", plan.AITips.Motivation)
}
