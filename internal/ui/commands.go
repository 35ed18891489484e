package ui

// Command is an interactive slash command
type Command struct {
	Name        string
	Description string
}

// Commands lists the slash commands understood by the interactive session
var Commands = []Command{
	{"/help", "Show this help message"},
	{"/exit", "Exit the application"},
	{"/reset", "Clear the conversation history"},
	{"/history", "Show the conversation history"},
	{"/info", "Show session information"},
	{"/tools", "List available tools"},
	{"/retry", "Retry the last failed or unfinished turn"},
	{"/summary", "Summarize the conversation so far"},
	{"/clear", "Clear the screen"},
}
