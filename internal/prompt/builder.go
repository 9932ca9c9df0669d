package prompt

import (
	"strings"

	"gretutor/internal/domain"
)

// FormatConversation renders history as "role: content" lines in original order.
func FormatConversation(history []domain.ConversationTurn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, turn.Role+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}

// BuildGeneralPrompt returns the general GRE analysis prompt used by /analyze-image.
func BuildGeneralPrompt(extractedText, question string) string {
	return `You are an expert GRE tutor. Analyze the following GRE question and provide a detailed explanation:

Question: ` + question + `

Question text from image:
` + extractedText + `

Please provide your analysis in the following format:

1. Correct Answer:
   - State the correct answer(s)
   - Explain why this is correct, referencing specific parts of the passage

2. Step-by-step Explanation:
   - Break down the reasoning process
   - Highlight key phrases or concepts from the passage that lead to the answer

3. Key Concepts and Strategies:
   - Identify the main concepts tested in this question
   - Provide strategies for approaching similar questions

4. Common Mistakes to Avoid:
   - List potential misinterpretations or traps
   - Explain why these are incorrect

5. Follow-up Discussion:
   - Pose 1 related questions to deepen understanding
   - Provide brief answers to these follow-up questions

Ensure all explanations are based strictly on the information provided in the passage. If there's ambiguity, acknowledge it and explain potential interpretations.
`
}

// VerbalInput carries everything the verbal template interpolates.
type VerbalInput struct {
	ExtractedText string
	Question      string
	History       []domain.ConversationTurn
	CorrectAnswer string // optional; omitted from the prompt when empty
}

// BuildVerbalPrompt returns the conversation-aware verbal prompt. The model is
// asked to answer with HTML section headings so the response can be shown as-is.
func BuildVerbalPrompt(in VerbalInput) string {
	correctAnswerClause := ""
	if in.CorrectAnswer != "" {
		correctAnswerClause = "\nThe user has indicated that the correct answer is: " + in.CorrectAnswer
	}

	return `You are an expert GRE tutor. Analyze the following GRE question and provide a detailed explanation.
Take into account the entire conversation history when formulating your response.
` + correctAnswerClause + `

Image text:
` + in.ExtractedText + `

Conversation history:
` + FormatConversation(in.History) + `

Current question: ` + in.Question + `

Please provide your analysis in the following format:

<h2>1. Correct Answer</h2>
State the correct answer(s) for each blank or part of the question. If the user has provided a correct answer, acknowledge it and explain why it's correct.

<h2>2. Explanation</h2>
Provide a detailed explanation of the answer, including:
- The meaning of the correct words
- How they fit into the context of the sentence or passage
- Why other options are incorrect (if applicable)
- Any relevant grammatical or vocabulary rules

<h2>3. Key Concepts and Strategies</h2>
<ul>
  <li>Identify the main concepts tested in this question</li>
  <li>Provide strategies for approaching similar questions</li>
</ul>

<h2>4. Common Mistakes to Avoid</h2>
<ul>
  <li>List potential misinterpretations or traps</li>
  <li>Explain why these are incorrect</li>
</ul>

<h2>5. Practice and Improvement</h2>
<ul>
  <li>Suggest related areas the user might want to study further</li>
  <li>Provide a similar practice question or scenario to reinforce the concept</li>
</ul>

Ensure your response is coherent with the entire conversation history and builds upon previous explanations.
Use appropriate HTML tags to structure your response for better readability.
`
}

// BuildQuantPrompt returns the quantitative reasoning prompt.
func BuildQuantPrompt(extractedText, question string) string {
	return `As an expert GRE quantitative tutor, analyze the following GRE math question:

Question: ` + question + `

Question text from image:
` + extractedText + `

Please provide your analysis in the following structured format:

1. Correct Answer:
   - State the correct answer
   - Briefly explain why it's correct

2. Step-by-step Solution:
   - Break down the problem-solving process
   - Show all work and calculations
   - Explain each step clearly

3. Key Mathematical Concepts:
   - List the main mathematical concepts involved
   - Briefly explain how they apply to this problem

4. Alternative Solution Methods:
   - If applicable, provide other ways to solve the problem
   - Explain the pros and cons of each method

5. Common Mistakes and Pitfalls:
   - Identify potential errors students might make
   - Explain how to avoid these mistakes

6. Time-saving Tips:
   - Provide strategies for solving this type of problem quickly
   - Mention any relevant shortcuts or estimation techniques

7. Similar Practice Question:
   - Provide a new quantitative question of similar difficulty and type
   - Include the correct answer and a brief explanation

Format each section with clear headings and use bullet points or numbering for clarity. Use LaTeX notation for mathematical expressions where appropriate.
`
}

// BuildWritingPrompt returns the analytical writing prompt.
func BuildWritingPrompt(extractedText, writingPrompt string) string {
	return `As an expert GRE analytical writing tutor, analyze the following GRE writing prompt:

Prompt: ` + writingPrompt + `

Prompt text from image:
` + extractedText + `

Please provide your analysis in the following structured format:

1. Prompt Analysis:
   - Identify the type of essay required (Issue or Argument)
   - List key elements to address in the response
   - Explain the main focus or challenge of this prompt

2. Essay Structure:
   - Provide a suggested outline for a high-scoring essay, including:
     a) Introduction with a clear thesis statement
     b) Main body paragraphs with topic sentences and key points
     c) Conclusion

3. Key Arguments and Examples:
   - List potential arguments or examples to include
   - Explain how they support the essay's main points

4. Common Pitfalls:
   - Identify typical mistakes in GRE writing tasks
   - Provide tips on how to avoid these issues

5. Time Management:
   - Offer a suggested time breakdown for planning, writing, and reviewing
   - Include strategies for efficient writing within the time constraint

6. Writing Style Tips:
   - Provide advice on improving clarity and coherence
   - Suggest ways to demonstrate sophisticated writing skills

7. Sample Paragraph:
   - Write a brief example paragraph demonstrating effective writing for this prompt
   - Explain the strengths of this paragraph

Format each section with clear headings and use bullet points or numbering for clarity.
`
}

// BuildFollowUpPrompt returns the prompt for a follow-up question on a previous answer.
func BuildFollowUpPrompt(question, previousContext string) string {
	return `You are an expert GRE tutor. A student has a follow-up question about your previous explanation.

Previous explanation:
` + previousContext + `

Follow-up question: ` + question + `

Answer the follow-up question directly and concisely, building on the previous explanation.
If the question introduces a new concept, explain it with a short GRE-style example.
Use appropriate HTML tags to structure your response for better readability.
`
}
