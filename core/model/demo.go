package model

// DefaultCatalog is the built-in skills catalog shown when no catalog file is
// configured.
func DefaultCatalog() *Catalog {
	return MustCatalog([]Category{
		{
			Name: "Frontend",
			Cards: []Card{
				{ID: "react", Title: "React / Next", Subtitle: "Hooks, SSR, RSC"},
				{ID: "ts", Title: "TypeScript", Subtitle: "Typesafety, DX"},
				{ID: "ui", Title: "Tailwind / UI", Subtitle: "Design Systems"},
				{ID: "r3f", Title: "R3F", Subtitle: "3D UX, shaders"},
				{ID: "testing", Title: "Testing", Subtitle: "Vitest, RTL"},
				{ID: "perf", Title: "Perf", Subtitle: "LCP / TTI budgets"},
			},
		},
		{
			Name: "Backend",
			Cards: []Card{
				{ID: "node", Title: "Node / Express", Subtitle: "REST, WS"},
				{ID: "auth", Title: "Auth", Subtitle: "JWT, OAuth"},
				{ID: "ci", Title: "CI / CD", Subtitle: "Build, deploy"},
				{ID: "obs", Title: "Observability", Subtitle: "Logs, traces"},
				{ID: "queue", Title: "Queues", Subtitle: "BullMQ"},
				{ID: "arch", Title: "Architecture", Subtitle: "Clean / Hex"},
			},
		},
		{
			Name: "Data",
			Cards: []Card{
				{ID: "pg", Title: "Postgres", Subtitle: "Schemas, tuning"},
				{ID: "redis", Title: "Redis", Subtitle: "Caching"},
				{ID: "prisma", Title: "Prisma", Subtitle: "ORM"},
				{ID: "search", Title: "Search", Subtitle: "Text / vector"},
				{ID: "etl", Title: "ETL", Subtitle: "Pipelines"},
				{ID: "migrations", Title: "Migrations", Subtitle: "Safe rollout"},
			},
		},
		{
			Name: "Infra",
			Cards: []Card{
				{ID: "docker", Title: "Docker", Subtitle: "Images, compose"},
				{ID: "cloud", Title: "Cloud", Subtitle: "Azure / AWS"},
				{ID: "cdn", Title: "CDN", Subtitle: "Edges, caching"},
				{ID: "secrets", Title: "Secrets", Subtitle: "Vault / KMS"},
				{ID: "monitor", Title: "Monitoring", Subtitle: "Grafana"},
				{ID: "network", Title: "Networking", Subtitle: "TLS, DNS"},
			},
		},
		{
			Name: "AI",
			Cards: []Card{
				{ID: "llm", Title: "LLMs", Subtitle: "Prompting, tools"},
				{ID: "rag", Title: "RAG", Subtitle: "Chunking, evals"},
				{ID: "vector", Title: "Vector DB", Subtitle: "Qdrant"},
				{ID: "eval", Title: "Evaluation", Subtitle: "Harnesses"},
				{ID: "agents", Title: "Agents", Subtitle: "Orchestration"},
				{ID: "realtime", Title: "Realtime", Subtitle: "Live UIs"},
			},
		},
	})
}
