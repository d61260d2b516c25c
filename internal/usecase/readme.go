package usecase

import (
	"context"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-assistant/internal/domain"
	"github.com/naka-gawa/github-assistant/internal/gateway"
	"github.com/naka-gawa/github-assistant/internal/markdown"
)

const (
	sampledFilesLimit     = 10
	sampledFileCharLimit  = 5000
	fileFetchConcurrency  = 4
	unavailableContentMsg = "// Content could not be retrieved"
)

var readmeOptions = gateway.CompletionOptions{Temperature: 0.4, MaxTokens: 2000}

var codeExtensions = map[string]bool{
	"js": true, "jsx": true, "ts": true, "tsx": true, "py": true, "java": true, "c": true,
	"cpp": true, "cs": true, "go": true, "rs": true, "rb": true, "php": true,
}

const readmePrompt = `
You are a technical writer specializing in creating clear, informative README.md files for GitHub projects.
Create a comprehensive README.md for this repository based on the code and files provided.

Repository information:
- Name: %s
- Description: %s
- Language: %s
- Created by: %s

Here are some files from the repository:
%s

Create a README.md in markdown format that includes:
1. Project title and description
2. Features
3. Installation instructions
4. Usage examples
5. Technologies used
6. Project structure
7. Contributing guidelines
8. License information (if available)

Make sure the README is well-formatted, professional, and provides a clear overview of the project.
`

// ReadmeGenerator is the use case for drafting a README from a repository's code.
type ReadmeGenerator struct {
	fetcher   gateway.Fetcher
	completer gateway.Completer
	logger    *log.Logger
}

// NewReadmeGenerator creates a new ReadmeGenerator instance. completer may be nil,
// in which case Generate fails with domain.ErrLLMUnavailable after validation.
func NewReadmeGenerator(fetcher gateway.Fetcher, completer gateway.Completer, logger *log.Logger) *ReadmeGenerator {
	return &ReadmeGenerator{
		fetcher:   fetcher,
		completer: completer,
		logger:    logger,
	}
}

// Generate samples code files of owner/name at branch and asks the language model for a README.
func (g *ReadmeGenerator) Generate(ctx context.Context, owner, name, branch string) (*domain.ReadmeDraft, error) {
	owner, name, err := domain.ValidateRepo(owner, name)
	if err != nil {
		return nil, err
	}
	branch, err = domain.ValidateBranch(branch)
	if err != nil {
		return nil, err
	}
	if g.completer == nil {
		return nil, domain.ErrLLMUnavailable
	}
	g.logger.Printf("Usecase: Starting README generation for %s/%s@%s...", owner, name, branch)

	var repo *github.Repository
	var files []string

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		repo, err = g.fetcher.FetchRepo(egCtx, owner, name)
		return err
	})

	eg.Go(func() error {
		var err error
		files, err = g.fetcher.FetchTreeFiles(egCtx, owner, name, branch)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sources, err := g.sampleSources(ctx, owner, name, branch, selectCodeFiles(files, sampledFilesLimit))
	if err != nil {
		return nil, err
	}
	g.logger.Printf("Usecase: Sampled %d of %d files.", len(sources), len(files))

	prompt := fmt.Sprintf(readmePrompt,
		repo.GetName(),
		valueOr(repo.GetDescription(), "No description provided"),
		valueOr(repo.GetLanguage(), "Not specified"),
		repo.GetOwner().GetLogin(),
		formatSources(sources),
	)
	readme, err := g.completer.Complete(ctx, prompt, readmeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to generate README: %w", err)
	}

	g.logger.Println("Usecase: README generation complete.")
	return &domain.ReadmeDraft{
		RepoData:   repo,
		FilesList:  files,
		Readme:     readme,
		ReadmeHTML: markdown.ToHTML(readme),
	}, nil
}

// sampleSources fetches the given files with bounded concurrency, keeping their order.
// A file that cannot be fetched is replaced by a placeholder rather than failing the draft.
func (g *ReadmeGenerator) sampleSources(ctx context.Context, owner, name, branch string, paths []string) ([]domain.SourceFile, error) {
	sources := make([]domain.SourceFile, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(fileFetchConcurrency)
	for i, p := range paths {
		eg.Go(func() error {
			content, err := g.fetcher.FetchFileContent(egCtx, owner, name, p, branch)
			if err != nil {
				g.logger.Printf("  Could not fetch %s: %v", p, err)
				content = unavailableContentMsg
			}
			sources[i] = domain.SourceFile{Path: p, Content: content}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

// selectCodeFiles returns the first limit files with a known source code extension.
func selectCodeFiles(files []string, limit int) []string {
	selected := make([]string, 0, limit)
	for _, f := range files {
		if len(selected) == limit {
			break
		}
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(f), "."))
		if codeExtensions[ext] {
			selected = append(selected, f)
		}
	}
	return selected
}

func formatSources(sources []domain.SourceFile) string {
	blocks := make([]string, 0, len(sources))
	for _, src := range sources {
		blocks = append(blocks, fmt.Sprintf("File: %s\n```\n%s\n```", src.Path, truncate(src.Content, sampledFileCharLimit)))
	}
	return strings.Join(blocks, "\n\n")
}

// truncate cuts s to limit characters and marks the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
