package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// GrokService talks to xAI's Grok API. The API is wire-compatible with the
// OpenAI chat-completions format, so requests go over plain HTTP/JSON.
//
// Every method degrades to a canned fallback instead of returning an error:
// the mentor must stay usable when the AI is down, and the caller renders
// whatever string comes back.
type GrokService struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	rateChan   chan struct{} // Token bucket
}

func NewGrokService(baseURL, apiKey, model string, concurrentReqs int) *GrokService {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GrokService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		rateChan:   rateChan,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (s *GrokService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Minute):
		return fmt.Errorf("timeout waiting for Grok rate slot")
	}
}

func (s *GrokService) releaseRate() {
	s.rateChan <- struct{}{}
}

// complete runs one chat-completion round trip with a bounded wait.
func (s *GrokService) complete(ctx context.Context, messages []chatMessage, temperature float64, maxTokens int, timeout time.Duration) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(chatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode Grok response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", fmt.Errorf("authentication failed (%d)", resp.StatusCode)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("rate_limit exceeded (%d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg := ""
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("Grok API error (%d): %s", resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned from API")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response content from API")
	}

	return content, nil
}

// StudentContext carries what the mentor knows about the student up front.
type StudentContext struct {
	StudentName  string
	StudentGrade int
	Subject      string
	Difficulty   string
}

// Chat answers a student's free-text question. systemContext is the
// already-assembled learning context sentence (may be empty).
func (s *GrokService) Chat(ctx context.Context, userMessage, systemContext string, student *StudentContext) string {
	if strings.TrimSpace(userMessage) == "" {
		return "I didn't receive a question. What would you like to know?"
	}

	var b strings.Builder
	b.WriteString("You are an AI Learning Mentor helping students with their studies. ")
	b.WriteString("You should be encouraging, patient, and provide clear explanations tailored to the student's level. ")
	b.WriteString("Keep responses concise (2-3 paragraphs) and actionable. ")

	if student != nil {
		if student.StudentName != "" {
			fmt.Fprintf(&b, "Address the student as %s. ", student.StudentName)
		}
		if student.StudentGrade > 0 {
			fmt.Fprintf(&b, "The student is in grade %d. ", student.StudentGrade)
		}
		if student.Subject != "" {
			fmt.Fprintf(&b, "They are currently studying %s. ", student.Subject)
		}
		if student.Difficulty != "" {
			fmt.Fprintf(&b, "The difficulty level is %s. ", student.Difficulty)
		}
	}

	if systemContext != "" {
		b.WriteString("\n\nCurrent learning context: " + systemContext)
	}

	content, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: b.String()},
		{Role: "user", Content: userMessage},
	}, 0.7, 500, 15*time.Second)

	if err != nil {
		log.Printf("Grok API error in Chat: %v", err)
		return chatFallback(err)
	}

	// A refusal is not useful to a student; redirect instead.
	lower := strings.ToLower(content)
	for _, phrase := range []string{"i cannot", "i'm unable to", "against my programming"} {
		if strings.Contains(lower, phrase) {
			log.Printf("Grok refused to answer: %s", content)
			return "I'd be happy to help with your studies! Could you rephrase your question or ask about a specific topic you're learning?"
		}
	}

	return content
}

func chatFallback(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return "I'm taking a bit longer to think. Could you try asking your question again?"
	case strings.Contains(msg, "authentication"):
		return "I'm having trouble connecting to my knowledge base. Please let your teacher know."
	case strings.Contains(msg, "rate_limit"):
		return "I'm getting too many questions right now. Please wait a moment and try again."
	default:
		return "I encountered an issue, but I'm here to help! Could you try rephrasing your question?"
	}
}

// GeneratePersonalizedGoals asks for exactly four learning goals and parses
// the bulleted answer. Anything short of three usable goals falls back to the
// canned set.
func (s *GrokService) GeneratePersonalizedGoals(ctx context.Context, studentGrade int, subject, difficulty string) []string {
	if subject == "" || studentGrade < 1 {
		return fallbackGoals(subject, difficulty)
	}

	prompt := fmt.Sprintf(`Generate exactly 4 specific, measurable, and achievable learning goals for a grade %d student
studying %s at a %s level. Each goal should be:
- One clear sentence
- Grade-appropriate
- Focused on mastery and understanding
- Actionable for the student

Format: Return ONLY a bulleted list with exactly 4 goals, each starting with a dash (-).`,
		studentGrade, subject, difficulty)

	content, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are an expert educational curriculum designer creating personalized learning goals."},
		{Role: "user", Content: prompt},
	}, 0.8, 400, 10*time.Second)

	if err != nil {
		log.Printf("Grok API error in GeneratePersonalizedGoals: %v", err)
		return fallbackGoals(subject, difficulty)
	}

	goals := parseGoalBullets(content)
	if len(goals) < 3 {
		log.Printf("Grok returned insufficient goals (%d): %v", len(goals), goals)
		return fallbackGoals(subject, difficulty)
	}
	if len(goals) > 5 {
		goals = goals[:5]
	}
	return goals
}

// parseGoalBullets accepts the usual bullet shapes: -, *, •, "1." etc.
func parseGoalBullets(text string) []string {
	var goals []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		numbered := line[0] >= '0' && line[0] <= '9' && strings.Contains(line[:min(3, len(line))], ".")
		if !strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "•") && !numbered {
			continue
		}
		goal := strings.TrimSpace(strings.TrimLeft(line, "-*•0123456789. "))
		if len(goal) > 10 {
			goals = append(goals, goal)
		}
	}
	return goals
}

func fallbackGoals(subject, difficulty string) []string {
	subjectName := subject
	if subjectName == "" {
		subjectName = "the subject"
	}
	return []string{
		fmt.Sprintf("Understand and master core concepts in %s", subjectName),
		fmt.Sprintf("Complete all assigned content at %s level with 80%%+ accuracy", difficulty),
		fmt.Sprintf("Apply %s knowledge to solve real-world problems", subjectName),
		"Demonstrate mastery through assessments and projects",
	}
}

// GenerateAssessmentFeedback writes short encouragement for a scored
// assessment; the fallback is banded by score.
func (s *GrokService) GenerateAssessmentFeedback(ctx context.Context, score float64, subject string, questionsMissed []string) string {
	prompt := fmt.Sprintf("A student scored %.0f%% on a %s assessment. ", score, subject)
	if len(questionsMissed) > 0 {
		prompt += fmt.Sprintf("They struggled with: %s. ", strings.Join(questionsMissed, ", "))
	}
	prompt += "Provide encouraging, specific feedback (2-3 sentences) on how to improve."

	content, err := s.complete(ctx, []chatMessage{
		{Role: "user", Content: prompt},
	}, 0.7, 200, 10*time.Second)

	if err != nil {
		log.Printf("Grok API error in GenerateAssessmentFeedback: %v", err)
		switch {
		case score >= 80:
			return fmt.Sprintf("Great job! You scored %.0f%% which shows strong understanding. Keep up the excellent work!", score)
		case score >= 60:
			return fmt.Sprintf("You scored %.0f%%. You're on the right track! Review the areas you found challenging and try some practice problems.", score)
		default:
			return fmt.Sprintf("You scored %.0f%%. Don't worry - learning takes time! Let's focus on understanding the fundamentals. I'm here to help if you have questions.", score)
		}
	}

	return content
}
