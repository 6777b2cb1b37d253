package agent

import "github.com/soyeahso/reviewdesk/internal/domain"

// DefaultAgents returns the five-stage review pipeline used when no agents are configured.
func DefaultAgents() []domain.AgentConfig {
	return []domain.AgentConfig{
		{
			ID:           "1",
			Name:         "申請資料重點分析與摘要專家",
			Description:  "申請資料重點分析與摘要專家",
			SystemPrompt: "你是一位醫療器材法規專家。根據提供的文件，進行繁體中文摘要in markdown in traditional chinese with keywords in coral color. Please also create a table include 20 key items。\n- 識別：廠商名稱、地址、品名、類別、證書編號、日期、機構 \n- 標註不確定項目，保留原文引用 \n- 以結構化格式輸出（表格或JSON）",
			UserPrompt:   "你是一位醫療器材法規專家。根據提供的文件，進行繁體中文摘要in markdown in traditional chinese with keywords in coral color. Please also create a table include 20 key items。",
			Model:        "gemini-2.5-flash",
			GenerationParams: domain.GenerationParams{
				Temperature: 0,
				TopP:        0.9,
				MaxTokens:   3000,
			},
		},
		{
			ID:           "2",
			Name:         "合約資料分析師",
			Description:  "合約資料分析師",
			SystemPrompt: "合約資料分析師，請確認合約中包含以下內容，請摘要合約內容。\n- 委託者及受託者之名稱及地址\n- 託製造之合意\n- 委託製造之醫療器材分類分級品項\n- 委託製造之製程\n- 委託者及受託者之權利義務",
			UserPrompt:   "請確認合約中包含以下內容，請摘要合約內容 in markdown in traditional chinese with keywords in coral color",
			Model:        "gemini-2.5-flash",
			GenerationParams: domain.GenerationParams{
				Temperature: 0,
				TopP:        0.9,
				MaxTokens:   3200,
			},
		},
		{
			ID:           "3",
			Name:         "醫療器材委託製造合約審查專家",
			Description:  "醫療器材委託製造合約審查專家",
			SystemPrompt: "醫療器材合約審查專家，請確認合約資料是否包含以下審查重點內容，並提供綜合審查建議。",
			UserPrompt:   "請確認合約資料是否包含以下審查重點內容，並提供綜合審查建議。若目前提供的資料不足以判定是否符合規定，請告訴使用者應該進一步提供或確認那些資訊。",
			Model:        "gemini-2.5-flash",
			GenerationParams: domain.GenerationParams{
				Temperature: 0.3,
				TopP:        0.9,
				MaxTokens:   1500,
			},
		},
		{
			ID:           "4",
			Name:         "仿單變更比對器",
			Description:  "比對仿單版本差異，識別重要變更",
			SystemPrompt: "你是法規文件比對專家。\n- 識別新舊版本差異（新增、刪除、修改）\n- 標註重要安全性變更\n- 以對照表呈現差異",
			UserPrompt:   "請比對以下文件的版本差異：",
			Model:        "gemini-2.5-flash-lite",
			GenerationParams: domain.GenerationParams{
				Temperature: 0.2,
				TopP:        0.9,
				MaxTokens:   1200,
			},
		},
		{
			ID:           "5",
			Name:         "綜合報告生成器",
			Description:  "整合所有分析結果生成完整報告",
			SystemPrompt: "你是文件整合專家。\n- 彙整：前述所有代理的分析結果\n- 生成：結構化完整報告\n- 標註：重點發現、風險警示、建議事項\n- 以專業格式輸出（含目錄、章節）",
			UserPrompt:   "請整合以下所有分析結果生成綜合報告：",
			Model:        "gemini-2.5-flash",
			GenerationParams: domain.GenerationParams{
				Temperature: 0.4,
				TopP:        0.95,
				MaxTokens:   2000,
			},
		},
	}
}
