package vision

import (
	"fmt"
	"sort"
	"strings"
)

// stopWords are filler words excluded from tags.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true,
	"with": true, "on": true, "in": true, "and": true,
}

// CaptionResult is the image description returned to the chat front end.
type CaptionResult struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}

// Captioner describes uploaded images with a local ONNX classifier: the
// best-scoring label becomes the caption, the top labels' keywords become
// tags. An independent capability: nothing in the RAG pipeline depends on it.
type Captioner struct {
	model    *imageModel
	tagCount int
}

func NewCaptioner(modelPath, labelsPath, onnxLibPath string, tagCount int) *Captioner {
	if tagCount <= 0 {
		tagCount = 3
	}
	return &Captioner{
		model: &imageModel{
			modelPath:  modelPath,
			labelsPath: labelsPath,
			libPath:    onnxLibPath,
		},
		tagCount: tagCount,
	}
}

// Describe classifies the image and assembles a caption and keyword tags.
func (c *Captioner) Describe(imageData []byte) (*CaptionResult, error) {
	img, err := decodeImage(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	scores, err := c.model.run(img)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("model returned no scores")
	}

	ranked := make([]int, len(scores))
	for i := range ranked {
		ranked[i] = i
	}
	sort.Slice(ranked, func(i, j int) bool { return scores[ranked[i]] > scores[ranked[j]] })

	best := c.labelFor(ranked[0])
	caption := "An image"
	if best != "" {
		caption = fmt.Sprintf("This image most likely shows %s.", best)
	}

	return &CaptionResult{
		Caption: caption,
		Tags:    c.tagsFrom(ranked),
	}, nil
}

func (c *Captioner) labelFor(idx int) string {
	if idx < 0 || idx >= len(c.model.labels) {
		return ""
	}
	return c.model.labels[idx]
}

// tagsFrom extracts up to tagCount distinct keywords from the top-ranked
// labels, skipping stop words.
func (c *Captioner) tagsFrom(ranked []int) []string {
	var tags []string
	seen := make(map[string]bool)

	for _, idx := range ranked {
		label := strings.ToLower(c.labelFor(idx))
		for _, word := range strings.Fields(strings.ReplaceAll(label, ",", " ")) {
			if stopWords[word] || seen[word] {
				continue
			}
			seen[word] = true
			tags = append(tags, word)
			if len(tags) >= c.tagCount {
				return tags
			}
		}
	}
	return tags
}
