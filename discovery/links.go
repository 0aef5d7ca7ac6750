package discovery

import (
	"fmt"
	"sort"
	"strings"

	"mvdan.cc/xurls/v2"

	"github.com/vbagdi/ResearchCode/domain"
)

var CodeHostDomain = "github.com"

// CodeHostURL finds a code host repository link among a package index
// record's home page, project URLs and description.  Returns "" when none is
// present.
func CodeHostURL(c *domain.Candidate) string {
	texts := []string{c.HomePage}
	keys := make([]string, 0, len(c.ProjectURLs))
	for k := range c.ProjectURLs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		texts = append(texts, c.ProjectURLs[k])
	}
	texts = append(texts, c.DescriptionText())

	rx := xurls.Relaxed()
	for _, text := range texts {
		for _, match := range rx.FindAllString(text, -1) {
			if u := repoURL(match); u != "" {
				return u
			}
		}
	}
	return ""
}

// repoURL reduces a link to https://<code host>/<owner>/<repo>, or "" if the
// link does not point at a repository.
func repoURL(link string) string {
	if strings.Contains(link, "://") {
		link = strings.SplitN(link, "://", 2)[1]
	}
	link = strings.TrimPrefix(link, "www.")
	parts := strings.Split(strings.Trim(link, "/"), "/")
	if len(parts) < 3 || !strings.EqualFold(parts[0], CodeHostDomain) {
		return ""
	}
	owner, repo := parts[1], strings.TrimSuffix(parts[2], ".git")
	if owner == "" || repo == "" {
		return ""
	}
	return fmt.Sprintf("https://%v/%v/%v", CodeHostDomain, owner, repo)
}
