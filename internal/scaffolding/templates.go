package scaffolding

const readmeTemplate = `# {{.ProjectName}}

A curated collection of interview questions and answers, organized by level.

## Layout

- ` + "`questions/<level>/<topic>.md`" + ` - numbered prompts per topic
- ` + "`answers/<level>/<topic>.md`" + ` - answers matching the prompt numbers
- ` + "`examples/snippets/`" + ` - dependency-free runnable examples
- ` + "`examples/rails/`" + ` - framework-dependent examples with version/setup notes

Levels: {{range $i, $l := .Levels}}{{if $i}}, {{end}}{{$l}}{{end}}.

## Validating

Run ` + "`quizlint check-all`" + ` before opening a pull request.
`

const configTemplate = `# quizlint configuration, generated {{.Date}}
roots:
  questions: questions
  answers: answers
  examples: examples

normalize:
  lowercase: true
  trim: true
  collapse_separators: true

# examples:
#   denylist:
#     - ActiveRecord
#     - ActionController
`

const contributingTemplate = `# Contributing to {{.ProjectName}}

## Adding a topic

1. Create ` + "`questions/<level>/<topic>.md`" + ` with a top-level heading and
   numbered prompts (` + "`### 1.`" + `, ` + "`### 2.`" + `, ...).
2. Create ` + "`answers/<level>/<topic>.md`" + ` with the same numbers, a direct
   answer and an explanation per prompt.
3. Use snake_case topic names so the two files pair up.
4. Run ` + "`quizlint check-all`" + ` and fix any violations.

## Adding an example script

- Dependency-free scripts go in ` + "`examples/snippets/`" + ` and must not use
  framework classes or DSL calls.
- Framework-dependent scripts go in ` + "`examples/rails/`" + ` and must carry a
  comment naming the framework version and any setup steps.
`

const questionIssueTemplate = `---
name: New question proposal
about: Propose a new interview question for the corpus
---

## Level

<!-- beginner / intermediate / advanced / rails -->

## Topic

<!-- snake_case topic name, e.g. blocks_procs_lambdas -->

## Question

<!-- the prompt text, with a code example if helpful -->

## Suggested answer

<!-- a direct answer plus a short explanation -->
`

const pullRequestTemplate = `## What does this change?

<!-- new topic, corrected answer, new example script, ... -->

## Checklist

- [ ] Question and answer files pair up (same level and topic name)
- [ ] Prompt numbers match between the two files
- [ ] ` + "`quizlint check-all`" + ` passes
`

const starterQuestionTemplate = `# Getting Started

### 1. What does this corpus contain?

Describe the purpose of the collection in your own words.

### 2. How are topics organized?

` + "```" + `
questions/<level>/<topic>.md
answers/<level>/<topic>.md
` + "```" + `
`

const starterAnswerTemplate = `# Getting Started: Answers

### 1. What does this corpus contain?

Interview questions with canonical answers and small runnable examples.

### 2. How are topics organized?

By level directory and snake_case topic name; every question file has an
answer file at the mirrored path.
`
