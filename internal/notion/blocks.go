package notion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"snaptex/internal/domain"
)

// BlocksMimeType is the versioned non-standard MIME type Notion reads for
// rich paste. A text/plain fallback always accompanies it.
const BlocksMimeType = "text/_notion-blocks-v3"

const (
	BlockTypeText     = "text"
	BlockTypeEquation = "equation"

	parentTable = "space"
)

// BlockProperties wraps the block content as a single-element title.
type BlockProperties struct {
	Title [][]string `json:"title"`
}

// Block is one typed, uniquely-identified unit of the rich-paste payload.
type Block struct {
	ID             string          `json:"id"`
	Type           string          `json:"type"`
	Properties     BlockProperties `json:"properties"`
	ParentTable    string          `json:"parent_table"`
	Alive          bool            `json:"alive"`
	CreatedTime    int64           `json:"created_time"`
	LastEditedTime int64           `json:"last_edited_time"`
}

// BlockPayload is the document serialized under BlocksMimeType.
type BlockPayload struct {
	Blocks                 []Block `json:"blocks"`
	Action                 string  `json:"action"`
	WasContiguousSelection bool    `json:"wasContiguousSelection"`
}

// BuildBlocks converts content items into blocks, applying the LaTeX repairs
// to equation items when autoFix is set. Each block gets a fresh identifier
// and creation timestamps of now.
func BuildBlocks(items []ContentItem, autoFix bool) []Block {
	now := time.Now().UnixMilli()
	blocks := make([]Block, 0, len(items))
	for _, item := range items {
		content := item.Content
		blockType := BlockTypeText
		if item.Type == ItemBlockEquation || item.Type == ItemInlineEquation {
			blockType = BlockTypeEquation
			if autoFix {
				content = FixLatex(content)
			}
		}
		blocks = append(blocks, Block{
			ID:             uuid.New().String(),
			Type:           blockType,
			Properties:     BlockProperties{Title: [][]string{{content}}},
			ParentTable:    parentTable,
			Alive:          true,
			CreatedTime:    now,
			LastEditedTime: now,
		})
	}
	return blocks
}

// BuildClipboardPayload parses text into blocks and packages them for the
// clipboard: the block document under BlocksMimeType plus the original
// unprocessed text on the text/plain channel.
func BuildClipboardPayload(text string, autoFix bool) (domain.ClipboardPayload, error) {
	doc := BlockPayload{
		Blocks:                 BuildBlocks(ParseContent(text), autoFix),
		Action:                 "copy",
		WasContiguousSelection: true,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return domain.ClipboardPayload{}, fmt.Errorf("marshaling block payload: %w", err)
	}
	return domain.ClipboardPayload{
		PlainText: text,
		Entries: []domain.MimeEntry{
			{MimeType: BlocksMimeType, Data: string(data)},
		},
	}, nil
}
