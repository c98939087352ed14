// Package content holds the localized copy shown around the room preview.
package content

import "spatial-preview/internal/i18n"

// Feature is one row of the side panel's feature list.
type Feature struct {
	Title string
	Desc  string
}

// Player is the copy of the preview section: the side panel and the overlay on the 3D pane.
type Player struct {
	Heading     string
	Description string
	Features    []Feature
	Button      string

	ConceptTitle string
	Subtitle     string
	Hint         string
}

// ForPlayer returns the preview section copy in p's current language.
func ForPlayer(p *i18n.Provider) Player {
	return Player{
		Heading: p.T("房地产空间计算", "Spatial Computing for Real Estate"),
		Description: p.T(
			"将物理空间转化为沉浸式数字资产。我们的技术使远程访问感觉像身临其境一样真实。",
			"Turn physical spaces into immersive digital assets. Our technology enables remote visits that feel as real as being there.",
		),
		Features: []Feature{
			{Title: p.T("娃娃屋视角", "Dollhouse View"), Desc: p.T("完整的3D结构理解。", "Complete 3D structural understanding.")},
			{Title: p.T("激光测量", "Laser Measurement"), Desc: p.T("精度在±5mm范围内。", "Accuracy within ±5mm range.")},
			{Title: p.T("AI增强", "AI Enhancement"), Desc: p.T("自动移除移动物体。", "Auto-removal of moving objects.")},
		},
		Button:       p.T("了解解决方案", "Learn Solution"),
		ConceptTitle: p.T("数字孪生概念", "Digital Twin Concept"),
		Subtitle:     "Real-time Rendering",
		Hint:         p.T("拖动旋转 • 滚动缩放", "Drag to Rotate • Scroll to Zoom"),
	}
}

// Strings returns every string of the copy, in display order.
func (c Player) Strings() []string {
	out := []string{c.Heading, c.Description}
	for _, f := range c.Features {
		out = append(out, f.Title, f.Desc)
	}
	return append(out, c.Button, c.ConceptTitle, c.Subtitle, c.Hint)
}

// AllStrings returns the copy in every language, e.g. to collect the glyphs a font must cover.
func AllStrings() []string {
	var out []string
	for _, l := range []i18n.Lang{i18n.Chinese, i18n.English} {
		out = append(out, ForPlayer(i18n.NewProvider(l)).Strings()...)
	}
	return out
}
